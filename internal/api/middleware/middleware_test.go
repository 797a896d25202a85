package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReplayRouter(t *testing.T, window time.Duration, calls *int) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	d := NewDeduplicator(window)
	t.Cleanup(func() { _ = d.Close() })

	r := gin.New()
	r.Use(d.Handler())
	r.POST("/x", func(c *gin.Context) {
		*calls++
		var body map[string]string
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bad"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"q": body["q"], "call": *calls})
	})
	return r
}

func post(r http.Handler, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(body)))
	return rec
}

func TestDeduplicatorReplaysIdenticalRequest(t *testing.T) {
	calls := 0
	r := newReplayRouter(t, time.Minute, &calls)

	first := post(r, `{"q":"1,5"}`)
	second := post(r, `{"q":"1,5"}`)

	require.Equal(t, http.StatusOK, first.Code)
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, "true", second.Header().Get(ReplayHeader))
	assert.Empty(t, first.Header().Get(ReplayHeader))
	assert.Equal(t, 1, calls)
}

func TestDeduplicatorDifferentBodies(t *testing.T) {
	calls := 0
	r := newReplayRouter(t, time.Minute, &calls)

	assert.Equal(t, http.StatusOK, post(r, `{"q":"1"}`).Code)
	assert.Equal(t, http.StatusOK, post(r, `{"q":"2"}`).Code)
	assert.Equal(t, 2, calls)
}

func TestDeduplicatorDoesNotReplayErrors(t *testing.T) {
	calls := 0
	r := newReplayRouter(t, time.Minute, &calls)

	assert.Equal(t, http.StatusBadRequest, post(r, `{"q":`).Code)
	assert.Equal(t, http.StatusBadRequest, post(r, `{"q":`).Code)
	assert.Equal(t, 2, calls)
}

func TestDeduplicatorWindowExpires(t *testing.T) {
	calls := 0
	r := newReplayRouter(t, 20*time.Millisecond, &calls)

	post(r, `{"q":"1"}`)
	time.Sleep(50 * time.Millisecond)
	rec := post(r, `{"q":"1"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get(ReplayHeader))
	assert.Equal(t, 2, calls)
}

func TestDeduplicatorIgnoresGet(t *testing.T) {
	gin.SetMode(gin.TestMode)
	d := NewDeduplicator(time.Hour)
	t.Cleanup(func() { _ = d.Close() })

	r := gin.New()
	r.Use(d.Handler())
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
		assert.Equal(t, http.StatusNoContent, rec.Code)
	}
}

func TestDeduplicatorRestoresBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	d := NewDeduplicator(time.Hour)
	t.Cleanup(func() { _ = d.Close() })

	r := gin.New()
	r.Use(d.Handler())
	r.POST("/x", func(c *gin.Context) {
		var body map[string]string
		require.NoError(t, c.ShouldBindJSON(&body))
		c.String(http.StatusOK, body["q"])
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(`{"q":"1,5"}`)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1,5", rec.Body.String())
}

func TestNewRateLimiter(t *testing.T) {
	l := NewRateLimiter(3, time.Hour)
	assert.True(t, l.Allow())
	assert.True(t, l.Allow())
	assert.True(t, l.Allow())
	assert.False(t, l.Allow())

	unlimited := NewRateLimiter(0, 0)
	for i := 0; i < 100; i++ {
		assert.True(t, unlimited.Allow())
	}
}

func TestBodySizeLimitWithoutContentLength(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(BodySizeLimit(8))
	r.POST("/x", func(c *gin.Context) {
		var body map[string]string
		if err := c.ShouldBindJSON(&body); err != nil {
			c.Status(http.StatusRequestEntityTooLarge)
			return
		}
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(`{"q":"long value"}`))
	req.ContentLength = -1
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Recovery())
	r.GET("/panic", func(c *gin.Context) { panic("boom") })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "INTERNAL_ERROR")
}
