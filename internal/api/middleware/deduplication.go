package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"recipe-viewer/internal/core/cache"
	"recipe-viewer/internal/infrastructure/config"
	"recipe-viewer/internal/pkg/common"
)

const (
	// replayCacheSize 重播快取最多保留的回應數
	replayCacheSize = 1000
	// ReplayHeader 標示回應來自重播快取
	ReplayHeader = "X-Replayed"
)

// Deduplicator 在時間窗內以先前的回應回覆完全相同的 POST 請求
type Deduplicator struct {
	responses *cache.Manager
}

// NewDeduplicator 創建去重器；window <= 0 時使用 1 秒
func NewDeduplicator(window time.Duration) *Deduplicator {
	if window <= 0 {
		window = time.Second
	}
	return &Deduplicator{
		responses: cache.NewManager(&config.CacheConfig{
			MaxSize:         replayCacheSize,
			TTL:             window,
			CleanupInterval: 10 * window,
		}),
	}
}

// Close 停止背景清理
func (d *Deduplicator) Close() error {
	return d.responses.Close()
}

// fingerprint 以路徑與請求體雜湊作為鍵；結果只取決於請求內容
func fingerprint(path string, body []byte) string {
	hash := sha256.Sum256(body)
	return path + ":" + hex.EncodeToString(hash[:])
}

// bodyRecorder 同時寫出並記錄回應內容
type bodyRecorder struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *bodyRecorder) Write(data []byte) (int, error) {
	w.body.Write(data)
	return w.ResponseWriter.Write(data)
}

func (w *bodyRecorder) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// Handler 請求去重中間件，只處理 POST；成功的回應在時間窗內直接重播
func (d *Deduplicator) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost || c.Request.Body == nil {
			c.Next()
			return
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			common.LogWarn("Failed to read request body", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, common.ErrRequestTooLarge.Response(false))
			return
		}
		// 恢復請求體
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		key := fingerprint(c.Request.URL.Path, body)
		ctx := context.Background()

		if cached, err := d.responses.Get(ctx, key); err == nil {
			duplicateReplays.Inc()
			common.LogDebug("Duplicate request replayed",
				zap.String("ip", c.ClientIP()),
				zap.String("path", c.Request.URL.Path),
			)
			c.Header(ReplayHeader, "true")
			c.Data(http.StatusOK, "application/json; charset=utf-8", cached)
			c.Abort()
			return
		}

		recorder := &bodyRecorder{ResponseWriter: c.Writer}
		c.Writer = recorder

		c.Next()

		if recorder.Status() == http.StatusOK && !c.IsAborted() {
			if err := d.responses.Set(ctx, key, recorder.body.Bytes()); err != nil {
				common.LogWarn("Failed to store response for replay", zap.Error(err))
			}
		}
	}
}
