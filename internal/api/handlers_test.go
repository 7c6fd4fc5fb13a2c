// internal/api/handlers_test.go
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Corphon/FactLens/internal/llm"
	"github.com/Corphon/FactLens/internal/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubProvider returns a canned analyzer response, or err when set.
type stubProvider struct {
	response string
	err      error
}

func (s *stubProvider) Initialize(config map[string]string) error      { return nil }
func (s *stubProvider) GetName() string                                { return "Stub" }
func (s *stubProvider) GetSupportedModels() []string                   { return []string{"stub/model"} }
func (s *stubProvider) FetchAvailableModels(ctx context.Context) error { return nil }
func (s *stubProvider) SetCustomModels(models []string)                {}

func (s *stubProvider) CompleteText(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &llm.CompletionResponse{
		Text:         s.response,
		FinishReason: "stop",
		TokensUsed:   10,
		ModelName:    "stub/model",
		ProviderName: s.GetName(),
	}, nil
}

func (s *stubProvider) StreamCompletion(ctx context.Context, req llm.CompletionRequest) (<-chan llm.StreamResponse, error) {
	ch := make(chan llm.StreamResponse)
	go func() {
		defer close(ch)
		ch <- llm.StreamResponse{Text: s.response, ModelName: "stub/model"}
		ch <- llm.StreamResponse{Done: true, FinishReason: "stop", ModelName: "stub/model"}
	}()
	return ch, nil
}

func newTestRouter(provider llm.Provider) *gin.Engine {
	var llmService *services.LLMService
	if provider != nil {
		llmService = services.NewLLMServiceWithProvider(provider)
	} else {
		llmService, _ = services.NewLLMService()
	}

	handler := NewHandler(
		services.NewFactCheckServiceWithLLMService(llmService),
		services.NewConfigService(),
	)

	r := gin.New()
	r.POST("/api/factcheck", handler.FactCheck)
	r.GET("/api/llm/status", handler.GetLLMStatus)
	r.GET("/api/settings", handler.GetSettings)
	r.GET("/api/health", handler.HealthCheck)
	r.GET("/api/metrics", handler.GetMetrics)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	data, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func getPath(r *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestFactCheckEndpoint(t *testing.T) {
	r := newTestRouter(&stubProvider{
		response: `{
			"issues": [
				{"excerpt": "The moon is made of cheese", "issue": "It is rock.", "type": "misleading", "sources": ["https://example.com/moon"]}
			],
			"all_sources": ["https://example.com/moon"]
		}`,
	})

	w := postJSON(t, r, "/api/factcheck", gin.H{
		"text": "The moon is made of cheese, some say.",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Report struct {
				Issues []struct {
					Type string `json:"type"`
				} `json:"issues"`
				Segments []json.RawMessage `json:"segments"`
				HTML     string            `json:"html"`
			} `json:"report"`
			IssuesHTML string `json:"issues_html"`
			LegendHTML string `json:"legend_html"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.True(t, resp.Success)
	require.Len(t, resp.Data.Report.Issues, 1)
	assert.Equal(t, "misleading", resp.Data.Report.Issues[0].Type)
	assert.NotEmpty(t, resp.Data.Report.Segments)
	assert.Contains(t, resp.Data.Report.HTML, "fact-issue")
	assert.Contains(t, resp.Data.IssuesHTML, "Misleading")
	assert.NotEmpty(t, resp.Data.LegendHTML)
}

func TestFactCheckEndpointRejectsMissingText(t *testing.T) {
	r := newTestRouter(&stubProvider{response: `{"issues": [], "all_sources": []}`})

	w := postJSON(t, r, "/api/factcheck", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFactCheckEndpointRejectsBlankText(t *testing.T) {
	r := newTestRouter(&stubProvider{response: `{"issues": [], "all_sources": []}`})

	w := postJSON(t, r, "/api/factcheck", gin.H{"text": "   \n  "})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrorEmptyText, resp.Error.Code)
}

func TestFactCheckEndpointUnavailableWithoutProvider(t *testing.T) {
	r := newTestRouter(nil)

	w := postJSON(t, r, "/api/factcheck", gin.H{"text": "Some claim."})
	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	var resp APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrorLLMServiceUnavailable, resp.Error.Code)
}

func TestFactCheckEndpointMapsTypedErrors(t *testing.T) {
	r := newTestRouter(&stubProvider{err: errors.New("upstream timeout")})

	w := postJSON(t, r, "/api/factcheck", gin.H{"text": "Some claim."})
	require.Equal(t, http.StatusInternalServerError, w.Code)

	var resp APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "PROCESSING_ERROR", resp.Error.Code)
}

func TestLLMStatusEndpoint(t *testing.T) {
	r := newTestRouter(&stubProvider{})

	w := getPath(r, "/api/llm/status")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Ready    bool   `json:"ready"`
			Provider string `json:"provider"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.True(t, resp.Data.Ready)
	assert.Equal(t, "Stub", resp.Data.Provider)
}

func TestHealthEndpoint(t *testing.T) {
	r := newTestRouter(&stubProvider{})

	w := getPath(r, "/api/health")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestSettingsEndpointMasksAPIKey(t *testing.T) {
	r := newTestRouter(&stubProvider{})

	w := getPath(r, "/api/settings")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			LLMConfig map[string]string `json:"llm_config"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	if key := resp.Data.LLMConfig["api_key"]; key != "" {
		assert.Contains(t, key, "****")
	}
}

func TestMaskSecret(t *testing.T) {
	assert.Equal(t, "********", maskSecret("short"))
	assert.Equal(t, "sk-a****wxyz", maskSecret("sk-abcdefghijklmnopqrstuvwxyz"))
	assert.True(t, isMaskedSecret("********"))
	assert.True(t, isMaskedSecret(maskSecret("sk-abcdefghijklmnopqrstuvwxyz")))
	assert.False(t, isMaskedSecret("sk-abcdefghijklmnopqrstuvwxyz"))
}
