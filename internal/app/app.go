// internal/app/app.go
package app

import (
	"fmt"
	"path/filepath"

	"github.com/Corphon/FactLens/internal/config"
	"github.com/Corphon/FactLens/internal/di"
	"github.com/Corphon/FactLens/internal/services"
	"github.com/Corphon/FactLens/internal/utils"

	// Provider registration
	_ "github.com/Corphon/FactLens/internal/llm/providers/openrouter"
)

// InitServices builds all services in dependency order and registers
// them in the DI container. The router only looks services up, it never
// creates them.
func InitServices() error {
	container := di.GetContainer()

	cfg := config.GetCurrentConfig()

	if err := utils.InitLogger(filepath.Join(cfg.LogDir, "factlens.log")); err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}

	logger := utils.GetLogger()
	if cfg.DebugMode {
		logger.SetLogLevel(utils.DEBUG)
	}

	// LLM service first. An unconfigured provider is not an error, the
	// service just starts in the not-ready state.
	llmService, err := services.NewLLMService()
	if err != nil {
		return fmt.Errorf("initializing LLM service: %w", err)
	}
	container.Register("llm", llmService)

	configService := services.NewConfigService()
	container.Register("config", configService)

	factCheckService := services.NewFactCheckServiceWithLLMService(llmService)
	container.Register("factcheck", factCheckService)

	ready, state := llmService.GetProviderStatus()
	logger.Info("services initialized", map[string]interface{}{
		"services":       len(container.GetNames()),
		"analyzer_ready": ready,
		"analyzer_state": state,
	})

	return nil
}

// Cleanup releases service resources on shutdown.
func Cleanup() {
	container := di.GetContainer()
	container.Clear()
}
