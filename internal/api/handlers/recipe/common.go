package recipe

import (
	"recipe-viewer/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError 將錯誤轉為 JSON 響應；debug 模式才附上原始錯誤
func respondError(c *gin.Context, err error, debug bool) {
	ce := common.AsCustomError(err)
	if ce.Status >= 500 {
		common.LogError("Request failed",
			zap.String("request_id", requestid.Get(c)),
			zap.String("code", ce.Code),
			zap.Error(err),
		)
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(ce.Status, ce.Response(debug))
}
