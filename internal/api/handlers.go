// internal/api/handlers.go
package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Corphon/FactLens/internal/config"
	apperrors "github.com/Corphon/FactLens/internal/errors"
	"github.com/Corphon/FactLens/internal/llm"
	"github.com/Corphon/FactLens/internal/models"
	"github.com/Corphon/FactLens/internal/render"
	"github.com/Corphon/FactLens/internal/services"
	"github.com/Corphon/FactLens/internal/utils"
)

// maxTextBytes caps the size of a single fact-check request body.
const maxTextBytes = 64 * 1024

// Handler processes API requests
type Handler struct {
	FactCheckService *services.FactCheckService
	ConfigService    *services.ConfigService
	Response         *ResponseHelper
	Metrics          *utils.APIMetrics
}

// NewHandler creates the API handler over the injected services.
func NewHandler(
	factCheckService *services.FactCheckService,
	configService *services.ConfigService,
) *Handler {
	return &Handler{
		FactCheckService: factCheckService,
		ConfigService:    configService,
		Response:         NewResponseHelper(),
		Metrics:          utils.NewAPIMetrics(),
	}
}

// FactCheckRequest is the request body of POST /api/factcheck.
type FactCheckRequest struct {
	Text string `json:"text" binding:"required"`

	// Per-category visibility toggles. Absent toggles default to shown.
	ShowMisleading   *bool `json:"show_misleading,omitempty"`
	ShowQuestionable *bool `json:"show_questionable,omitempty"`
	ShowIncomplete   *bool `json:"show_incomplete,omitempty"`

	// Optional analyzer overrides for this request.
	Model           string `json:"model,omitempty"`
	ReasoningEffort string `json:"reasoning_effort,omitempty"`
}

func (r *FactCheckRequest) visibility() models.Visibility {
	show := models.ShowAll()
	if r.ShowMisleading != nil {
		show.Misleading = *r.ShowMisleading
	}
	if r.ShowQuestionable != nil {
		show.Questionable = *r.ShowQuestionable
	}
	if r.ShowIncomplete != nil {
		show.Incomplete = *r.ShowIncomplete
	}
	return show
}

func (r *FactCheckRequest) analyzer() config.AnalyzerConfig {
	analyzer := config.GetCurrentConfig().Analyzer()
	if r.Model != "" {
		analyzer.Model = r.Model
	}
	if r.ReasoningEffort != "" {
		analyzer.ReasoningEffort = r.ReasoningEffort
	}
	return analyzer
}

// FactCheckResponse is the response body of POST /api/factcheck.
type FactCheckResponse struct {
	Report     *models.FactCheckReport `json:"report"`
	IssuesHTML string                  `json:"issues_html"`
	SourceHTML string                  `json:"source_html"`
	LegendHTML string                  `json:"legend_html"`
}

// FactCheck runs one blocking fact-check over the submitted text.
func (h *Handler) FactCheck(c *gin.Context) {
	var req FactCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Response.BadRequest(c, ErrorBadRequest, "Invalid request body", err)
		return
	}
	if len(req.Text) > maxTextBytes {
		h.Response.BadRequest(c, ErrorTextTooLarge, "Text exceeds the maximum size", nil)
		return
	}

	started := time.Now()
	report, err := h.FactCheckService.CheckText(c.Request.Context(), req.Text, req.visibility(), req.analyzer())
	if err != nil {
		h.Metrics.RecordError("fact_check", "api")
		var appErr *apperrors.AppError
		switch {
		case errors.Is(err, services.ErrEmptyText):
			h.Response.BadRequest(c, ErrorEmptyText, "No text to fact-check", err)
		case errors.Is(err, services.ErrLLMNotReady):
			h.Response.ServiceUnavailable(c, ErrorLLMServiceUnavailable, "Analyzer service is not configured", err)
		case errors.As(err, &appErr):
			h.Response.FromAppError(c, appErr)
		default:
			h.Response.InternalError(c, ErrorFactCheckFailed, "Fact check failed", err)
		}
		return
	}

	h.Metrics.RecordAnalyzerRequest(report.Provider, report.Model, report.TokensUsed, time.Since(started))
	h.Metrics.RecordFactCheck(len(report.Issues), len(report.Segments), len(report.Text))

	h.Response.Success(c, FactCheckResponse{
		Report:     report,
		IssuesHTML: render.IssueList(report.Issues),
		SourceHTML: render.SourceList(report.AllSources),
		LegendHTML: render.Legend(),
	})
}

// GetLLMStatus reports whether the analyzer provider is ready.
func (h *Handler) GetLLMStatus(c *gin.Context) {
	ready, state := h.FactCheckService.LLMService.GetProviderStatus()

	status := gin.H{
		"ready": ready,
		"state": state,
	}
	if ready {
		status["provider"] = h.FactCheckService.LLMService.GetProviderName()
		analyzer := config.GetCurrentConfig().Analyzer()
		status["model"] = analyzer.Model
		status["reasoning_effort"] = analyzer.ReasoningEffort
	}

	h.Response.Success(c, status)
}

// GetLLMModels lists the models available from the configured provider.
func (h *Handler) GetLLMModels(c *gin.Context) {
	providerName := h.ConfigService.GetLLMProvider()

	provider := h.FactCheckService.LLMService.GetProvider()
	if provider == nil {
		h.Response.Success(c, gin.H{
			"provider": providerName,
			"models":   llm.GetSupportedModelsForProvider(providerName),
		})
		return
	}

	if c.Query("refresh") == "true" {
		if err := provider.FetchAvailableModels(c.Request.Context()); err != nil {
			h.Response.ServiceUnavailable(c, ErrorConnectionFailed, "Failed to fetch the model list", err)
			return
		}
	}

	h.Response.Success(c, gin.H{
		"provider": providerName,
		"models":   provider.GetSupportedModels(),
	})
}

// UpdateLLMConfigRequest is the request body of PUT /api/llm/config.
type UpdateLLMConfigRequest struct {
	Provider string            `json:"provider"`
	Config   map[string]string `json:"config" binding:"required"`
}

// UpdateLLMConfig reconfigures the analyzer provider at runtime.
func (h *Handler) UpdateLLMConfig(c *gin.Context) {
	var req UpdateLLMConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Response.BadRequest(c, ErrorBadRequest, "Invalid request body", err)
		return
	}

	provider := req.Provider
	if provider == "" {
		provider = h.ConfigService.GetLLMProvider()
	}

	if err := h.FactCheckService.LLMService.UpdateProvider(provider, req.Config); err != nil {
		h.Response.BadRequest(c, ErrorLLMConfigInvalid, "Failed to apply the provider configuration", err)
		return
	}

	if err := h.ConfigService.UpdateLLMConfig(provider, req.Config); err != nil {
		h.Response.InternalError(c, ErrorSettingsSaveFailed, "Failed to persist the provider configuration", err)
		return
	}

	h.Response.Success(c, gin.H{
		"provider": provider,
		"ready":    h.FactCheckService.LLMService.IsReady(),
	}, "Provider configuration updated")
}

// GetSettings returns the editable application settings. The API key is
// masked.
func (h *Handler) GetSettings(c *gin.Context) {
	cfg := h.ConfigService.GetConfig()

	llmConfig := make(map[string]string, len(cfg.LLMConfig))
	for k, v := range cfg.LLMConfig {
		llmConfig[k] = v
	}
	if key := llmConfig["api_key"]; key != "" {
		llmConfig["api_key"] = maskSecret(key)
	}

	h.Response.Success(c, gin.H{
		"llm_provider": cfg.LLMProvider,
		"llm_config":   llmConfig,
		"debug_mode":   cfg.DebugMode,
	})
}

// SaveSettingsRequest is the request body of POST /api/settings.
type SaveSettingsRequest struct {
	LLMProvider string            `json:"llm_provider"`
	LLMConfig   map[string]string `json:"llm_config"`
	DebugMode   *bool             `json:"debug_mode,omitempty"`
}

// SaveSettings persists new application settings and reconfigures the
// analyzer provider when its settings changed.
func (h *Handler) SaveSettings(c *gin.Context) {
	var req SaveSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Response.BadRequest(c, ErrorBadRequest, "Invalid request body", err)
		return
	}

	if req.DebugMode != nil {
		if err := h.ConfigService.SetDebugMode(*req.DebugMode); err != nil {
			h.Response.InternalError(c, ErrorSettingsSaveFailed, "Failed to save settings", err)
			return
		}
	}

	if len(req.LLMConfig) > 0 {
		provider := req.LLMProvider
		if provider == "" {
			provider = h.ConfigService.GetLLMProvider()
		}

		// A masked key means "keep the stored one".
		if isMaskedSecret(req.LLMConfig["api_key"]) {
			req.LLMConfig["api_key"] = h.ConfigService.GetLLMConfig()["api_key"]
		}

		if err := h.FactCheckService.LLMService.UpdateProvider(provider, req.LLMConfig); err != nil {
			h.Response.BadRequest(c, ErrorLLMConfigInvalid, "Failed to apply the provider configuration", err)
			return
		}
		if err := h.ConfigService.UpdateLLMConfig(provider, req.LLMConfig); err != nil {
			h.Response.InternalError(c, ErrorSettingsSaveFailed, "Failed to save settings", err)
			return
		}
	}

	h.Response.Success(c, gin.H{
		"ready": h.FactCheckService.LLMService.IsReady(),
	}, "Settings saved")
}

// HealthCheck reports the service health.
func (h *Handler) HealthCheck(c *gin.Context) {
	ready, state := h.FactCheckService.LLMService.GetProviderStatus()

	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"analyzer":  state,
		"ready":     ready,
		"timestamp": time.Now(),
	})
}

// GetMetrics returns a snapshot of the collected metrics.
func (h *Handler) GetMetrics(c *gin.Context) {
	h.Response.Success(c, utils.GetMetricsCollector().GetMetrics())
}

func maskSecret(s string) string {
	if len(s) <= 8 {
		return "********"
	}
	return s[:4] + "****" + s[len(s)-4:]
}

func isMaskedSecret(s string) bool {
	return s != "" && (s == "********" || (len(s) > 8 && s[4:8] == "****"))
}
