package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"recipe-nutrition/internal/api/handlers/health"
	recipeHandler "recipe-nutrition/internal/api/handlers/recipe"
	"recipe-nutrition/internal/api/middleware"
	"recipe-nutrition/internal/core/nutrition"
	recipeService "recipe-nutrition/internal/core/recipe"
	"recipe-nutrition/internal/infrastructure/config"
	"recipe-nutrition/internal/infrastructure/storage"
	"recipe-nutrition/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// 超時設置
	timeoutDuration = 120 * time.Second
	// 請求體大小限制 (1MB，純文字 API 不需要更大)
	maxBodySize = 1 << 20
)

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config, store *storage.Storage) (*gin.Engine, error) {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	// 設置 gin 模式
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	// 創建路由引擎
	router := gin.New()

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(requestid.New()) // 自動生成請求 ID

	// CORS 設置
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 請求體大小限制
	router.Use(middleware.BodySizeLimit(maxBodySize))

	common.LogInfo("Initializing services",
		zap.String("nutrition_source", cfg.Nutrition.Source),
		zap.String("cache_backend", cfg.Nutrition.CacheBackend),
		zap.String("model", cfg.Groq.Model),
		zap.Duration("timeout", timeoutDuration),
	)

	// 營養查詢來源：USDA API 或本地食材目錄
	var searcher nutrition.FoodSearcher
	switch cfg.Nutrition.Source {
	case "catalog":
		searcher = storage.NewCatalogSearcher(store)
	default:
		usdaClient, err := nutrition.NewUSDAClient(&cfg.USDA)
		if err != nil {
			common.LogError("Failed to initialize USDA client", zap.Error(err))
			return nil, fmt.Errorf("failed to initialize USDA client: %w", err)
		}
		searcher = usdaClient
	}

	// 營養快取後端：記憶體或 Redis
	var cacheStore nutrition.Store
	switch cfg.Nutrition.CacheBackend {
	case "redis":
		redisStore, err := nutrition.NewRedisStore(cfg.Nutrition.RedisAddr)
		if err != nil {
			common.LogError("Failed to connect to Redis", zap.Error(err))
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		cacheStore = redisStore
	default:
		cacheStore = nutrition.NewMemoryStore()
	}

	resolver := nutrition.NewResolver(searcher, cacheStore, &cfg.Nutrition)
	aggregator := nutrition.NewAggregator(resolver)
	generator := recipeService.NewService(&cfg.Groq)

	common.LogInfo("Services initialized successfully",
		zap.String("nutrition_source", cfg.Nutrition.Source),
		zap.String("environment", cfg.App.Env),
	)

	// 全局中間件：設置超時與共用依賴
	router.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)

		c.Set("config", cfg)
		c.Set("storage", store)

		c.Next()
	})

	// 請求去重與限流
	router.Use(middleware.Deduplication(cfg))
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}

	// 健康檢查
	router.GET("/health", health.HealthCheck)
	router.GET("/ready", health.ReadinessCheck)
	router.GET("/live", health.LivenessCheck)

	// API 路由
	handler := recipeHandler.NewHandler(generator, aggregator, store)
	v1 := router.Group("/api/v1")
	{
		recipes := v1.Group("/recipes")
		{
			recipes.POST("/generate", handler.HandleGenerate)
			recipes.GET("", handler.HandleList)
			recipes.GET("/favorites", handler.HandleListFavorites)
			recipes.GET("/:id", handler.HandleGet)
			recipes.PATCH("/:id/favorite", handler.HandleToggleFavorite)
		}

		ingredients := v1.Group("/ingredients")
		{
			ingredients.POST("/parse", handler.HandleParseIngredients)
		}

		catalog := v1.Group("/catalog")
		{
			catalog.GET("", handler.HandleListCatalog)
			catalog.POST("", handler.HandleCreateCatalogItem)
			catalog.DELETE("/:id", handler.HandleDeleteCatalogItem)
		}
	}

	// 404 處理
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Route not found",
			"path":  c.Request.URL.Path,
		})
	})

	common.LogInfo("Router setup completed")
	return router, nil
}
