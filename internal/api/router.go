package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"smart-kitchen/internal/api/handlers/health"
	pantryHandler "smart-kitchen/internal/api/handlers/pantry"
	planHandler "smart-kitchen/internal/api/handlers/plan"
	recipeHandler "smart-kitchen/internal/api/handlers/recipe"
	"smart-kitchen/internal/api/middleware"
	"smart-kitchen/internal/core/ai/service"
	"smart-kitchen/internal/core/pantry"
	recipeService "smart-kitchen/internal/core/recipe"
	"smart-kitchen/internal/infrastructure/config"
	"smart-kitchen/internal/infrastructure/database"
	redisinfra "smart-kitchen/internal/infrastructure/redis"
	"smart-kitchen/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	// 一般路由的超時；生成路由只受後端逾時限制
	timeoutDuration = 120 * time.Second
	// 請求體大小限制 (1MB)
	maxBodySize = 1 << 20
)

// Dependencies 路由需要的外部資源
type Dependencies struct {
	Store *database.Store
	Redis *redis.Client // 可為 nil
	AI    *service.Service
}

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config, deps Dependencies) (*gin.Engine, error) {
	if deps.Store == nil || deps.AI == nil {
		return nil, errors.New("store and ai service are required")
	}

	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(requestid.New())
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	// cors 不接受空的來源清單
	if len(cfg.CORS.AllowOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowOrigins,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
			ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	} else {
		common.LogWarn("未設定 CORS 來源，跨域請求將被瀏覽器拒絕")
	}
	router.Use(middleware.BodySizeLimit(maxBodySize))
	timeout := requestTimeout(timeoutDuration)

	// 初始化服務
	pantrySvc := pantry.NewService(deps.Store)
	recipeSvc := recipeService.NewRecipeService(deps.Store)
	suggestionSvc := recipeService.NewSuggestionService(deps.Store)
	generationSvc := recipeService.NewGenerationService(deps.AI)

	healthH := health.NewHandler(cfg.App.Version,
		health.Check{Name: "database", Required: true, Ping: deps.Store.HealthCheck},
		health.Check{Name: "redis", Required: true, Ping: func(ctx context.Context) error {
			return redisinfra.Ping(ctx, deps.Redis)
		}},
		health.Check{Name: "generation", Required: false, Ping: deps.AI.Ping},
	)

	// 健康檢查路由
	router.GET("/health", timeout, healthH.HealthCheck)
	router.GET("/ready", timeout, healthH.ReadinessCheck)
	router.GET("/live", timeout, healthH.LivenessCheck)

	pantryH := pantryHandler.NewHandler(pantrySvc)
	pantryGroup := router.Group("/pantry", timeout)
	{
		pantryGroup.POST("/add", pantryH.HandleAdd)
		pantryGroup.GET("/list", pantryH.HandleList)
	}

	recipeH := recipeHandler.NewHandler(recipeSvc, suggestionSvc, generationSvc)
	generateChain := []gin.HandlerFunc{middleware.NewDeduplicator(cfg.DedupWindow).Middleware()}
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewLimiter(cfg.RateLimit, deps.Redis, "rate_limit:llm_generate")
		generateChain = append([]gin.HandlerFunc{middleware.RateLimit(limiter, cfg.RateLimit.Window)}, generateChain...)
	}
	generateChain = append(generateChain, recipeH.HandleGenerate)

	recipeGroup := router.Group("/recipes")
	{
		bounded := recipeGroup.Group("", timeout)
		bounded.POST("/add", recipeH.HandleAdd)
		bounded.GET("/list", recipeH.HandleList)
		bounded.GET("/suggest", recipeH.HandleSuggest)
		bounded.GET("/search", recipeH.HandleSearch)
		bounded.POST("/recompute_macros", recipeH.HandleRecomputeMacros)
		// 首次請求加菜系重試可能超過一般超時
		recipeGroup.POST("/llm_generate", generateChain...)
	}

	planH := planHandler.NewHandler()
	router.GET("/plan/day", timeout, planH.HandleDay)

	common.LogInfo("Router setup completed",
		zap.String("model", deps.AI.Model()),
		zap.Bool("redis_enabled", deps.Redis != nil),
		zap.Bool("rate_limit_enabled", cfg.RateLimit.Enabled),
		zap.Duration("timeout", timeoutDuration),
		zap.Int64("max_body_size", maxBodySize),
	)

	return router, nil
}

// requestTimeout 為每個請求加上逾時，處理器尚未回應時回傳 504
func requestTimeout(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		if errors.Is(ctx.Err(), context.DeadlineExceeded) && !c.Writer.Written() {
			common.LogError("Request timeout",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", requestid.Get(c)),
				zap.Duration("timeout", d),
			)
			err := common.NewError(common.ErrCodeRequestTimeout, "request timeout", http.StatusGatewayTimeout, ctx.Err())
			c.AbortWithStatusJSON(http.StatusGatewayTimeout, common.ToResponse(err))
		}
	}
}
