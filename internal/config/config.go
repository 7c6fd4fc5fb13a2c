// internal/config/config.go
package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/joho/godotenv"
)

var (
	currentConfig *AppConfig
	configMutex   sync.RWMutex
	configFile    string
)

// AppConfig holds the full application configuration, including the
// analyzer settings persisted between runs.
type AppConfig struct {
	Port      string `json:"port"`
	DataDir   string `json:"data_dir"`
	LogDir    string `json:"log_dir"`
	DebugMode bool   `json:"debug_mode"`

	// Analyzer settings. These are explicit values handed to the LLM
	// collaborator on every invocation, not process-wide mutable state.
	LLMProvider string            `json:"llm_provider"`
	LLMConfig   map[string]string `json:"llm_config"`
}

// Config is the base configuration loaded from the environment.
type Config struct {
	Port             string
	OpenRouterAPIKey string
	DataDir          string
	LogDir           string
	DebugMode        bool
	Model            string
	ReasoningEffort  string
	EnableStreaming  bool
}

// AnalyzerConfig is the per-invocation configuration of the external
// analysis collaborator.
type AnalyzerConfig struct {
	Model           string
	ReasoningEffort string
	Streaming       bool
}

// Load reads configuration from the environment. A .env file is honored
// when present.
func Load() (*Config, error) {
	godotenv.Load()

	config := &Config{
		Port:             getEnv("PORT", "8080"),
		OpenRouterAPIKey: getEnv("OPENROUTER_API_KEY", ""),
		DataDir:          getEnvPath("DATA_DIR", "data"),
		LogDir:           getEnvPath("LOG_DIR", "logs"),
		DebugMode:        getEnvBool("DEBUG_MODE", true),
		Model:            getEnv("FACTCHECK_MODEL", "openai/gpt-5"),
		ReasoningEffort:  getEnv("REASONING_EFFORT", "high"),
		EnableStreaming:  getEnvBool("ENABLE_STREAMING", true),
	}

	if config.OpenRouterAPIKey == "" {
		// Warn only; the key can still be supplied through the settings API.
		log.Println("warning: OPENROUTER_API_KEY not set; fact checking stays unavailable until configured")
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvPath(key, defaultValue string) string {
	path := getEnv(key, defaultValue)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := os.MkdirAll(path, 0755); err != nil {
			fmt.Printf("warning: failed to create directory %s: %v\n", path, err)
		}
	}

	return path
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

// InitConfig initializes the configuration manager, merging the
// environment with any settings persisted under the data dir.
func InitConfig(dataDir string) error {
	configFile = filepath.Join(dataDir, "config.json")

	baseConfig, err := Load()
	if err != nil {
		return err
	}

	configMutex.Lock()
	defer configMutex.Unlock()

	currentConfig = &AppConfig{
		Port:        baseConfig.Port,
		DataDir:     baseConfig.DataDir,
		LogDir:      baseConfig.LogDir,
		DebugMode:   baseConfig.DebugMode,
		LLMProvider: "openrouter",
		LLMConfig: map[string]string{
			"api_key":          baseConfig.OpenRouterAPIKey,
			"default_model":    baseConfig.Model,
			"reasoning_effort": baseConfig.ReasoningEffort,
			"streaming":        boolString(baseConfig.EnableStreaming),
		},
	}

	// Saved settings win over defaults, but the base environment always
	// supplies the runtime paths and the API key fallback.
	if _, err := os.Stat(configFile); !os.IsNotExist(err) {
		data, err := os.ReadFile(configFile)
		if err == nil {
			var savedConfig AppConfig
			if json.Unmarshal(data, &savedConfig) == nil {
				savedConfig.Port = baseConfig.Port
				savedConfig.DataDir = baseConfig.DataDir
				savedConfig.LogDir = baseConfig.LogDir
				savedConfig.DebugMode = baseConfig.DebugMode

				if savedConfig.LLMConfig != nil && savedConfig.LLMConfig["api_key"] == "" {
					savedConfig.LLMConfig["api_key"] = baseConfig.OpenRouterAPIKey
				}

				currentConfig = &savedConfig
			}
		}
	}

	return SaveConfig()
}

// GetCurrentConfig returns a copy of the current configuration.
func GetCurrentConfig() *AppConfig {
	configMutex.RLock()
	defer configMutex.RUnlock()

	if currentConfig == nil {
		baseConfig, _ := Load()
		return &AppConfig{
			Port:        baseConfig.Port,
			DataDir:     baseConfig.DataDir,
			LogDir:      baseConfig.LogDir,
			DebugMode:   baseConfig.DebugMode,
			LLMProvider: "openrouter",
			LLMConfig: map[string]string{
				"api_key": baseConfig.OpenRouterAPIKey,
			},
		}
	}

	configCopy := *currentConfig
	return &configCopy
}

// Analyzer derives the per-invocation analyzer configuration from the
// current settings.
func (c *AppConfig) Analyzer() AnalyzerConfig {
	cfg := AnalyzerConfig{
		Model:           "openai/gpt-5",
		ReasoningEffort: "high",
		Streaming:       true,
	}
	if c.LLMConfig == nil {
		return cfg
	}
	if m := c.LLMConfig["default_model"]; m != "" {
		cfg.Model = m
	}
	if e, ok := c.LLMConfig["reasoning_effort"]; ok {
		cfg.ReasoningEffort = e
	}
	if s, ok := c.LLMConfig["streaming"]; ok {
		cfg.Streaming = s == "true" || s == "1" || s == "yes"
	}
	return cfg
}

// UpdateLLMConfig replaces the analyzer provider settings.
func UpdateLLMConfig(provider string, config map[string]string) error {
	configMutex.Lock()
	defer configMutex.Unlock()

	if currentConfig == nil {
		return fmt.Errorf("config system not initialized")
	}

	currentConfig.LLMProvider = provider
	currentConfig.LLMConfig = config

	return SaveConfig()
}

// SetDebugMode updates the debug flag and persists it.
func SetDebugMode(debug bool) error {
	configMutex.Lock()
	defer configMutex.Unlock()

	if currentConfig == nil {
		return fmt.Errorf("config system not initialized")
	}

	currentConfig.DebugMode = debug
	return SaveConfig()
}

// SaveConfig persists the current configuration to the data dir.
func SaveConfig() error {
	if currentConfig == nil {
		return fmt.Errorf("no configuration to save")
	}

	dir := filepath.Dir(configFile)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(currentConfig, "", "  ")
	if err != nil {
		return fmt.Errorf("serializing config: %w", err)
	}

	return os.WriteFile(configFile, data, 0644)
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
