package server

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/joseph-ayodele/aps-analyzer/internal/common"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg common.ServerConfig, handler *Handler, logger *slog.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.MaxMultipartMemory = cfg.MaxUploadMB << 20

	router.Use(RecoveryMiddleware())
	router.Use(RequestIDMiddleware())
	router.Use(LoggerMiddleware(logger))

	router.GET("/health", handler.HealthCheck)

	v1 := router.Group("/api/v1")
	v1.Use(RateLimitMiddleware(NewIPLimiter(cfg.RatePerSecond, cfg.Burst)))
	{
		analyses := v1.Group("/analyses")
		{
			analyses.POST("", handler.CreateAnalysis)
			analyses.POST("/export", handler.ExportAnalysis)
		}
	}

	return router
}
