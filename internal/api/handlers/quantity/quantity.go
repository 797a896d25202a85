package quantity

import (
	"fmt"
	"net/http"

	"recipe-viewer/internal/core/quantity"
	"recipe-viewer/internal/pkg/common"

	"github.com/gin-gonic/gin"
)

// maxItems 單次請求可處理的項目上限
const maxItems = 1000

// ParseRequest 數量解析請求；值可以是字串、數字或 null
type ParseRequest struct {
	Quantities []any `json:"quantities" binding:"required"`
}

// ParseResult 數量解析結果
type ParseResult struct {
	Raw   string  `json:"raw"`
	Value float64 `json:"value"`
}

// FormatItem 待格式化的數量與單位
type FormatItem struct {
	Quantity any `json:"quantity"`
	Unit     any `json:"unit"`
}

// FormatRequest 數量格式化請求
type FormatRequest struct {
	Items []FormatItem `json:"items" binding:"required"`
}

// FormatResult 格式化結果
type FormatResult struct {
	Display string  `json:"display"`
	Compact string  `json:"compact"`
	Value   float64 `json:"value"`
}

// DominantRequest 主要食材請求
type DominantRequest struct {
	Ingredients []common.Ingredient `json:"ingredients"`
}

// DominantResponse 主要食材；無法判定時為 null
type DominantResponse struct {
	Dominant *string `json:"dominant"`
}

// HandleParse 解析數量文字
func HandleParse(c *gin.Context) {
	var req ParseRequest
	if !bind(c, &req, func() int { return len(req.Quantities) }) {
		return
	}

	results := make([]ParseResult, len(req.Quantities))
	for i, q := range req.Quantities {
		raw := common.CoerceString(q)
		results[i] = ParseResult{
			Raw:   raw,
			Value: quantity.Parse(raw),
		}
	}
	c.JSON(http.StatusOK, results)
}

// HandleFormat 格式化數量與單位
func HandleFormat(c *gin.Context) {
	var req FormatRequest
	if !bind(c, &req, func() int { return len(req.Items) }) {
		return
	}

	results := make([]FormatResult, len(req.Items))
	for i, item := range req.Items {
		q := common.CoerceString(item.Quantity)
		u := common.CoerceString(item.Unit)
		results[i] = FormatResult{
			Display: quantity.FormatSpaced(q, u),
			Compact: quantity.FormatUnspaced(q, u),
			Value:   quantity.Parse(q),
		}
	}
	c.JSON(http.StatusOK, results)
}

// HandleDominant 計算主要食材
func HandleDominant(c *gin.Context) {
	var req DominantRequest
	if !bind(c, &req, func() int { return len(req.Ingredients) }) {
		return
	}

	resp := DominantResponse{}
	if name, ok := quantity.ResolveDominant(req.Ingredients); ok {
		resp.Dominant = &name
	}
	c.JSON(http.StatusOK, resp)
}

// bind 解析請求並檢查項目數量，失敗時已寫出錯誤響應
func bind(c *gin.Context, req any, count func() int) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest,
			common.ErrInvalidRequest.Wrap(err).Response(gin.IsDebugging()))
		return false
	}
	if n := count(); n > maxItems {
		ce := common.AsCustomError(common.NewValidationError(fmt.Sprintf("too many items: %d > %d", n, maxItems)))
		c.AbortWithStatusJSON(ce.Status, ce.Response(gin.IsDebugging()))
		return false
	}
	return true
}
