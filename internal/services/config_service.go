// internal/services/config_service.go
package services

import (
	"sync"

	"github.com/Corphon/FactLens/internal/config"
)

// ConfigService exposes the runtime-editable settings to the API layer.
type ConfigService struct {
	mu     sync.RWMutex
	cached *config.AppConfig
}

func NewConfigService() *ConfigService {
	return &ConfigService{
		cached: config.GetCurrentConfig(),
	}
}

// GetConfig returns the current application configuration.
func (s *ConfigService) GetConfig() *config.AppConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.cached == nil {
		return config.GetCurrentConfig()
	}
	return s.cached
}

// GetLLMProvider returns the configured analyzer provider name.
func (s *ConfigService) GetLLMProvider() string {
	cfg := s.GetConfig()
	if cfg.LLMProvider == "" {
		return "openrouter"
	}
	return cfg.LLMProvider
}

// GetLLMConfig returns the analyzer provider settings.
func (s *ConfigService) GetLLMConfig() map[string]string {
	cfg := s.GetConfig()
	if cfg.LLMConfig == nil {
		return map[string]string{}
	}
	return cfg.LLMConfig
}

// UpdateLLMConfig persists new analyzer provider settings and refreshes
// the cache.
func (s *ConfigService) UpdateLLMConfig(provider string, llmConfig map[string]string) error {
	if provider == "" {
		provider = "openrouter"
	}
	if llmConfig["default_model"] == "" {
		llmConfig["default_model"] = defaultModel
	}

	if err := config.UpdateLLMConfig(provider, llmConfig); err != nil {
		return err
	}

	s.mu.Lock()
	s.cached = config.GetCurrentConfig()
	s.mu.Unlock()

	return nil
}

// SetDebugMode toggles debug mode and persists the change.
func (s *ConfigService) SetDebugMode(debug bool) error {
	if err := config.SetDebugMode(debug); err != nil {
		return err
	}

	s.mu.Lock()
	s.cached = config.GetCurrentConfig()
	s.mu.Unlock()

	return nil
}
