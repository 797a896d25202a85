package middleware

import (
	"fmt"
	"math"
	"net/http"
	"time"

	"recipe-viewer/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// NewRateLimiter 創建令牌桶限流器：每個 window 補充 requests 個令牌，桶容量為 requests
func NewRateLimiter(requests int, window time.Duration) *rate.Limiter {
	if requests <= 0 || window <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	return rate.NewLimiter(rate.Every(window/time.Duration(requests)), requests)
}

// RateLimit 限流中間件
func RateLimit(limiter *rate.Limiter, window time.Duration) gin.HandlerFunc {
	retryAfter := int(math.Ceil(window.Seconds()))

	return func(c *gin.Context) {
		if !limiter.Allow() {
			rateLimitRejects.Inc()
			common.LogWarn("Rate limit exceeded",
				zap.String("ip", c.ClientIP()),
				zap.String("path", c.Request.URL.Path),
			)

			c.Header("Retry-After", fmt.Sprintf("%d", retryAfter))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, common.ErrTooManyRequests.Response(false))
			return
		}

		c.Next()
	}
}
