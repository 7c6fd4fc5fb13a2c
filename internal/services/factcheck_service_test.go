// internal/services/factcheck_service_test.go
package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Corphon/FactLens/internal/config"
	apperrors "github.com/Corphon/FactLens/internal/errors"
	"github.com/Corphon/FactLens/internal/llm"
	"github.com/Corphon/FactLens/internal/models"
)

// mockProvider returns a canned completion and records the requests it
// receives.
type mockProvider struct {
	response     string
	streamChunks []string
	err          error
	lastRequest  llm.CompletionRequest
	calls        int
}

func (m *mockProvider) Initialize(config map[string]string) error { return nil }
func (m *mockProvider) GetName() string                           { return "Mock" }
func (m *mockProvider) GetSupportedModels() []string              { return []string{"mock/model"} }
func (m *mockProvider) FetchAvailableModels(ctx context.Context) error {
	return nil
}
func (m *mockProvider) SetCustomModels(models []string) {}

func (m *mockProvider) CompleteText(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	m.lastRequest = req
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return &llm.CompletionResponse{
		Text:         m.response,
		FinishReason: "stop",
		TokensUsed:   42,
		ModelName:    "mock/model",
		ProviderName: m.GetName(),
	}, nil
}

func (m *mockProvider) StreamCompletion(ctx context.Context, req llm.CompletionRequest) (<-chan llm.StreamResponse, error) {
	m.lastRequest = req
	m.calls++

	ch := make(chan llm.StreamResponse)
	go func() {
		defer close(ch)
		for _, chunk := range m.streamChunks {
			ch <- llm.StreamResponse{Text: chunk, ModelName: "mock/model"}
		}
		ch <- llm.StreamResponse{Done: true, FinishReason: "stop", ModelName: "mock/model"}
	}()
	return ch, nil
}

func analyzerConfig() config.AnalyzerConfig {
	return config.AnalyzerConfig{
		Model:           "mock/model",
		ReasoningEffort: "high",
	}
}

func TestCheckTextBuildsReport(t *testing.T) {
	provider := &mockProvider{
		response: `{
			"issues": [
				{
					"excerpt": "The tower is 500 meters tall",
					"issue": "The Eiffel Tower is about 330 meters tall.",
					"type": "misleading",
					"sources": ["https://example.com/eiffel"]
				}
			],
			"all_sources": ["https://example.com/eiffel", "Britannica"]
		}`,
	}
	service := NewFactCheckServiceWithLLMService(NewLLMServiceWithProvider(provider))

	text := "The tower is 500 meters tall and was built in 1889."
	report, err := service.CheckText(context.Background(), text, models.ShowAll(), analyzerConfig())
	require.NoError(t, err)

	assert.Equal(t, text, report.Text)
	require.Len(t, report.Issues, 1)
	assert.Equal(t, models.KindMisleading, report.Issues[0].Kind)

	// The located excerpt plus the trailing remainder.
	require.Len(t, report.Segments, 2)
	assert.False(t, report.Segments[0].Plain())
	assert.True(t, report.Segments[1].Plain())

	assert.Contains(t, report.HTML, "fact-issue")
	assert.Equal(t, "mock/model", report.Model)
	assert.Equal(t, "Mock", report.Provider)
	assert.Equal(t, 42, report.TokensUsed)

	require.Len(t, report.AllSources, 2)
	assert.Equal(t, models.CitationLink, report.AllSources[0].Kind)
	assert.Equal(t, models.CitationPlain, report.AllSources[1].Kind)
}

func TestCheckTextSendsSchemaAndEffort(t *testing.T) {
	provider := &mockProvider{response: `{"issues": [], "all_sources": []}`}
	service := NewFactCheckServiceWithLLMService(NewLLMServiceWithProvider(provider))

	_, err := service.CheckText(context.Background(), "Plain text.", models.ShowAll(), analyzerConfig())
	require.NoError(t, err)

	req := provider.lastRequest
	require.NotNil(t, req.ResponseSchema)
	assert.Equal(t, "fact_check_results", req.ResponseSchema.Name)
	assert.True(t, req.ResponseSchema.Strict)
	assert.Equal(t, "high", req.ReasoningEffort)
	assert.Equal(t, "mock/model", req.Model)
	assert.Contains(t, req.Prompt, "Plain text.")
	assert.Contains(t, req.SystemPrompt, "fact-checker")
}

func TestCheckTextNoIssues(t *testing.T) {
	provider := &mockProvider{response: `{"issues": [], "all_sources": []}`}
	service := NewFactCheckServiceWithLLMService(NewLLMServiceWithProvider(provider))

	report, err := service.CheckText(context.Background(), "Everything here is accurate.", models.ShowAll(), analyzerConfig())
	require.NoError(t, err)

	require.Len(t, report.Segments, 1)
	assert.True(t, report.Segments[0].Plain())
	assert.Empty(t, report.Issues)
	assert.Empty(t, report.AllSources)
}

func TestCheckTextEmptyInput(t *testing.T) {
	service := NewFactCheckServiceWithLLMService(NewLLMServiceWithProvider(&mockProvider{}))

	_, err := service.CheckText(context.Background(), "   \n\t  ", models.ShowAll(), analyzerConfig())
	assert.ErrorIs(t, err, ErrEmptyText)
}

func TestCheckTextNotReady(t *testing.T) {
	service := NewFactCheckServiceWithLLMService(createBaseLLMService())

	_, err := service.CheckText(context.Background(), "Some claim.", models.ShowAll(), analyzerConfig())
	assert.ErrorIs(t, err, ErrLLMNotReady)
}

func TestCheckTextClassifiesErrors(t *testing.T) {
	var appErr *apperrors.AppError

	service := NewFactCheckServiceWithLLMService(NewLLMServiceWithProvider(&mockProvider{}))
	_, err := service.CheckText(context.Background(), "   ", models.ShowAll(), analyzerConfig())
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrorTypeValidation, appErr.Type)

	service = NewFactCheckServiceWithLLMService(createBaseLLMService())
	_, err = service.CheckText(context.Background(), "Some claim.", models.ShowAll(), analyzerConfig())
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrorTypeUnavailable, appErr.Type)

	service = NewFactCheckServiceWithLLMService(NewLLMServiceWithProvider(&mockProvider{err: errors.New("upstream timeout")}))
	_, err = service.CheckText(context.Background(), "Some claim.", models.ShowAll(), analyzerConfig())
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrorTypeError, appErr.Type)
	assert.Equal(t, "PROCESSING_ERROR", appErr.Code)
}

func TestCheckTextRespectsVisibility(t *testing.T) {
	provider := &mockProvider{
		response: `{
			"issues": [
				{"excerpt": "claim one", "issue": "wrong", "type": "misleading", "sources": []},
				{"excerpt": "claim two", "issue": "unclear", "type": "questionable", "sources": []}
			],
			"all_sources": []
		}`,
	}
	service := NewFactCheckServiceWithLLMService(NewLLMServiceWithProvider(provider))

	show := models.Visibility{Misleading: true, Questionable: false, Incomplete: true}
	report, err := service.CheckText(context.Background(), "claim one and claim two end.", models.ShowAll(), analyzerConfig())
	require.NoError(t, err)
	highlighted := 0
	for _, seg := range report.Segments {
		if !seg.Plain() {
			highlighted++
		}
	}
	assert.Equal(t, 2, highlighted)

	report, err = service.CheckText(context.Background(), "claim one and claim two end.", show, analyzerConfig())
	require.NoError(t, err)
	highlighted = 0
	for _, seg := range report.Segments {
		if !seg.Plain() {
			highlighted++
		}
	}
	// The questionable issue stays in the report but is not highlighted.
	assert.Equal(t, 1, highlighted)
	assert.Len(t, report.Issues, 2)
}

func TestStreamCheckAccumulatesChunks(t *testing.T) {
	full := `{"issues": [{"excerpt": "moon landing", "issue": "needs context", "type": "incomplete", "sources": []}], "all_sources": []}`
	provider := &mockProvider{
		streamChunks: []string{full[:20], full[20:45], full[45:]},
	}
	service := NewFactCheckServiceWithLLMService(NewLLMServiceWithProvider(provider))

	var deltas []string
	report, err := service.StreamCheck(context.Background(), "The moon landing happened.", models.ShowAll(), analyzerConfig(), func(chunk llm.StreamResponse) {
		if chunk.Text != "" {
			deltas = append(deltas, chunk.Text)
		}
	})
	require.NoError(t, err)

	assert.Equal(t, full, strings.Join(deltas, ""))
	require.Len(t, report.Issues, 1)
	assert.Equal(t, models.KindIncomplete, report.Issues[0].Kind)
	assert.True(t, provider.lastRequest.Stream)
	assert.Equal(t, "mock/model", report.Model)
}

func TestStreamCheckCleansFencedJSON(t *testing.T) {
	provider := &mockProvider{
		streamChunks: []string{"```json\n", `{"issues": [], "all_sources": ["a"]}`, "\n```"},
	}
	service := NewFactCheckServiceWithLLMService(NewLLMServiceWithProvider(provider))

	report, err := service.StreamCheck(context.Background(), "Text.", models.ShowAll(), analyzerConfig(), nil)
	require.NoError(t, err)
	require.Len(t, report.AllSources, 1)
	assert.Equal(t, "a", report.AllSources[0].Text)
}
