// internal/api/router.go
package api

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/Corphon/FactLens/internal/config"
	"github.com/Corphon/FactLens/internal/di"
	"github.com/Corphon/FactLens/internal/services"
)

// SetupRouter configures the HTTP routes over the services registered in
// the DI container.
func SetupRouter() (*gin.Engine, error) {
	cfg := config.GetCurrentConfig()

	container := di.GetContainer()

	factCheckService, ok := container.Get("factcheck").(*services.FactCheckService)
	if !ok {
		return nil, fmt.Errorf("fact-check service not initialized")
	}

	configService, ok := container.Get("config").(*services.ConfigService)
	if !ok {
		return nil, fmt.Errorf("config service not initialized")
	}

	handler := NewHandler(factCheckService, configService)

	if !cfg.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	r.Use(corsMiddleware())
	r.Use(requestIDMiddleware())
	r.Use(metricsMiddleware(handler.Metrics))

	// WebSocket streaming
	r.GET("/ws/factcheck", handler.FactCheckWebSocket)

	// ===============================
	// API routes
	// ===============================
	apiGroup := r.Group("/api")
	apiGroup.Use(DefaultRateLimit())
	{
		apiGroup.POST("/factcheck", FactCheckRateLimit(), handler.FactCheck)

		apiGroup.GET("/llm/status", handler.GetLLMStatus)
		apiGroup.GET("/llm/models", handler.GetLLMModels)
		apiGroup.PUT("/llm/config", handler.UpdateLLMConfig)

		apiGroup.GET("/settings", handler.GetSettings)
		apiGroup.POST("/settings", handler.SaveSettings)

		apiGroup.GET("/health", handler.HealthCheck)
		apiGroup.GET("/metrics", handler.GetMetrics)
	}

	return r, nil
}
