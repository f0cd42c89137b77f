package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lambda-layer-common/internal/config"
	"lambda-layer-common/internal/middleware"
)

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, cfg *config.Config) {
	parseHandler := NewParseHandler(cfg.Body.DecodeFormKeys)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "lambda-layer-common",
			"mode":    config.GetDeploymentMode(),
		})
	})

	v1 := router.Group("/api/v1")
	v1.Use(middleware.RequestSizeLimit(cfg.Body.MaxSizeBytes))
	{
		parse := v1.Group("/parse")
		{
			parse.POST("/json", middleware.ContentTypeValidation("application/json"), parseHandler.ParseJSON)
			parse.POST("/form", middleware.ContentTypeValidation("application/x-www-form-urlencoded"), parseHandler.ParseForm)
		}
	}
}

// NewRouter builds the gin engine with the standard middleware chain
func NewRouter(cfg *config.Config) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.StructuredLogger())
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.RateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst))
	router.Use(middleware.ErrorHandler())

	SetupRoutes(router, cfg)
	return router
}
