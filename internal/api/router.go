package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"recipe-viewer/internal/api/handlers/health"
	"recipe-viewer/internal/api/handlers/quantity"
	recipeHandler "recipe-viewer/internal/api/handlers/recipe"
	"recipe-viewer/internal/api/middleware"
	"recipe-viewer/internal/core/cache"
	recipeService "recipe-viewer/internal/core/recipe"
	"recipe-viewer/internal/core/source"
	"recipe-viewer/internal/infrastructure/config"
	"recipe-viewer/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// SetupRouter 設置路由；store 可為 nil（快取關閉）
func SetupRouter(cfg *config.Config, store cache.Store) *gin.Engine {
	client := source.NewClient(&cfg.Source, store)
	catalog := recipeService.NewService(client, cfg.Source.Workers)
	return NewRouter(cfg, catalog, store)
}

// NewRouter 以指定的食譜目錄建立路由
func NewRouter(cfg *config.Config, catalog recipeHandler.Catalog, store cache.Store) *gin.Engine {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	// 設置 gin 模式
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(common.GenerateUUID)))
	router.Use(middleware.Logger())
	router.Use(middleware.Metrics())

	// CORS 設置：唯讀 API，允許任何來源
	router.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}))

	router.Use(middleware.BodySizeLimit(cfg.Server.MaxBodyBytes))

	// 全局中間件：設置超時並注入設定
	timeout := cfg.Server.RequestTimeout
	router.Use(func(c *gin.Context) {
		if timeout > 0 {
			ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
			defer cancel()
			c.Request = c.Request.WithContext(ctx)
		}

		c.Set(health.ConfigKey, cfg)
		if store != nil {
			c.Set(health.CacheKey, store)
		}

		c.Next()

		if errors.Is(c.Request.Context().Err(), context.DeadlineExceeded) && !c.Writer.Written() {
			common.LogError("Request timeout",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", requestid.Get(c)),
				zap.Duration("timeout", timeout),
			)
			c.AbortWithStatusJSON(http.StatusGatewayTimeout, common.ErrGatewayTimeout.Response(false))
		}
	})

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, common.ErrNotFound.Response(false))
	})

	// 健康檢查與監控
	router.GET("/health", health.HealthCheck)
	router.GET("/ready", health.ReadinessCheck)
	router.GET("/live", health.LivenessCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api/v1")
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window)
		api.Use(middleware.RateLimit(limiter, cfg.RateLimit.Window))
	}
	{
		recipes := recipeHandler.NewHandler(catalog, cfg.App.Debug)

		recipeGroup := api.Group("/recipes")
		{
			recipeGroup.GET("", recipes.HandleList)
			recipeGroup.GET("/:id", recipes.HandleDetail)
		}

		// 純計算端點，不需要上游資料；相同請求在時間窗內重播先前的回應
		dedup := middleware.NewDeduplicator(cfg.DedupWindow)
		quantityGroup := api.Group("/quantity", dedup.Handler())
		{
			quantityGroup.POST("/parse", quantity.HandleParse)
			quantityGroup.POST("/format", quantity.HandleFormat)
		}
		api.POST("/ingredients/dominant", dedup.Handler(), quantity.HandleDominant)
	}

	common.LogInfo("Router setup completed successfully",
		zap.Bool("cache_enabled", store != nil),
		zap.Bool("rate_limit_enabled", cfg.RateLimit.Enabled),
		zap.Duration("timeout", timeout),
		zap.Int64("max_body_size", cfg.Server.MaxBodyBytes),
	)

	return router
}
