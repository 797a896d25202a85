package recipe

import (
	"context"
	"net/http"
	"strconv"

	recipeService "recipe-viewer/internal/core/recipe"
	"recipe-viewer/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Catalog 食譜目錄服務
type Catalog interface {
	List(ctx context.Context) ([]recipeService.Summary, error)
	Overview(ctx context.Context) ([]recipeService.Summary, error)
	Detail(ctx context.Context, id string) (*recipeService.Detail, error)
}

// Handler 食譜處理程序
type Handler struct {
	catalog Catalog
	debug   bool
}

// NewHandler 創建新的食譜處理程序
func NewHandler(catalog Catalog, debug bool) *Handler {
	return &Handler{
		catalog: catalog,
		debug:   debug,
	}
}

// HandleList 食譜清單；?expand=true 時載入每筆詳細資料計算主要食材
func (h *Handler) HandleList(c *gin.Context) {
	expand, _ := strconv.ParseBool(c.DefaultQuery("expand", "false"))

	var (
		summaries []recipeService.Summary
		err       error
	)
	if expand {
		summaries, err = h.catalog.Overview(c.Request.Context())
	} else {
		summaries, err = h.catalog.List(c.Request.Context())
	}
	if err != nil {
		respondError(c, err, h.debug)
		return
	}

	common.LogDebug("Listed recipes",
		zap.String("request_id", requestid.Get(c)),
		zap.Bool("expand", expand),
		zap.Int("count", len(summaries)),
	)
	c.JSON(http.StatusOK, summaries)
}

// HandleDetail 單一食譜詳細資料
func (h *Handler) HandleDetail(c *gin.Context) {
	id := c.Param("id")

	detail, err := h.catalog.Detail(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, h.debug)
		return
	}

	common.LogDebug("Loaded recipe detail",
		zap.String("request_id", requestid.Get(c)),
		zap.String("recipe_id", id),
		zap.Int("ingredients_count", len(detail.Ingredients)),
	)
	c.JSON(http.StatusOK, detail)
}
