package handler

import (
	"github.com/SergeiKhy/post-stats/internal/middleware"
	"github.com/SergeiKhy/post-stats/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func NewRouter(
	statsService service.StatsService,
	maxLikes int64,
	rateLimiter *middleware.RateLimiter,
	logger *zap.Logger,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	// Middleware для логгирования
	router.Use(func(c *gin.Context) {
		logger.Info("Request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("ip", c.ClientIP()),
		)
		c.Next()
	})

	// API зовётся кросс-доменно со статического фронтенда
	router.Use(middleware.CORS())

	// Rate limiting для всех запросов
	router.Use(rateLimiter.Middleware())

	statsHandler := NewStatsHandler(statsService, maxLikes, logger)

	api := router.Group("/api")
	{
		api.GET("/health", HealthCheck)

		posts := api.Group("/posts")
		{
			posts.GET("/:slug/stats", statsHandler.GetStats)
			posts.GET("/:slug/user-stats", statsHandler.GetUserStats)
			posts.POST("/:slug/view", statsHandler.RecordView)
			posts.POST("/:slug/like", statsHandler.Like)
		}
	}

	return router
}
