// internal/services/factcheck_service.go
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Corphon/FactLens/internal/config"
	apperrors "github.com/Corphon/FactLens/internal/errors"
	"github.com/Corphon/FactLens/internal/llm"
	"github.com/Corphon/FactLens/internal/models"
	"github.com/Corphon/FactLens/internal/render"
	"github.com/Corphon/FactLens/internal/textspan"
	"github.com/Corphon/FactLens/internal/utils"
)

var ErrEmptyText = errors.New("no text to fact-check")

// FactCheckService runs one full fact-check: analyzer invocation,
// excerpt-to-span reconciliation, and HTML rendering. Each request is
// processed synchronously to completion; the semaphore only caps how many
// requests run at once.
type FactCheckService struct {
	LLMService *LLMService
	semaphore  chan struct{}
}

// NewFactCheckService creates the service on top of a freshly configured
// LLM service.
func NewFactCheckService() (*FactCheckService, error) {
	llmService, err := NewLLMService()
	if err != nil {
		return nil, err
	}
	return NewFactCheckServiceWithLLMService(llmService), nil
}

// NewFactCheckServiceWithLLMService wires an existing LLM service.
func NewFactCheckServiceWithLLMService(llmService *LLMService) *FactCheckService {
	return &FactCheckService{
		LLMService: llmService,
		semaphore:  make(chan struct{}, 3),
	}
}

const factCheckSystemPrompt = "You are a professional fact-checker. Analyze texts thoroughly and identify misleading information, questionable statements, and missing context. Always respond in English."

func factCheckPrompt(text string) string {
	return fmt.Sprintf(`Run a deep research to fact check this text. Identify any misleading information, questionable statements, or missing important information that would confuse the reader.

CRITICAL INSTRUCTIONS:
1. Respond in English
2. For the "excerpt" field: You MUST copy-paste the EXACT text from the original that has the issue. DO NOT write your own summary or commentary.
3. If information is MISSING (incomplete), you can describe what's missing in the "issue" field, but leave "excerpt" empty or put a relevant sentence that should have more detail.
4. Only include issues where you can point to specific problematic text OR identify specific gaps.

Return your analysis as a JSON object with the following structure:
{
"issues": [
    {
    "excerpt": "EXACT TEXT copied from the original (not your summary)",
    "issue": "explanation of what is wrong, misleading, or missing",
    "type": "misleading" | "questionable" | "incomplete",
    "sources": ["URL or source 1", "URL or source 2"]
    }
],
"all_sources": ["list", "of", "all", "sources", "used"]
}

For each issue, provide the sources you used to verify the information. Include ALL sources at the end in the all_sources array.

If no issues are found, return: {"issues": [], "all_sources": []}

Text to fact-check:
%s`, text)
}

// factCheckSchema is the strict response schema sent with every analyzer
// call.
func factCheckSchema() *llm.ResponseSchema {
	return &llm.ResponseSchema{
		Name:   "fact_check_results",
		Strict: true,
		Schema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"issues": map[string]interface{}{
					"type": "array",
					"items": map[string]interface{}{
						"type": "object",
						"properties": map[string]interface{}{
							"excerpt": map[string]interface{}{"type": "string"},
							"issue":   map[string]interface{}{"type": "string"},
							"type": map[string]interface{}{
								"type": "string",
								"enum": []string{"misleading", "questionable", "incomplete"},
							},
							"sources": map[string]interface{}{
								"type":  "array",
								"items": map[string]interface{}{"type": "string"},
							},
						},
						"required":             []string{"excerpt", "issue", "type", "sources"},
						"additionalProperties": false,
					},
				},
				"all_sources": map[string]interface{}{
					"type":  "array",
					"items": map[string]interface{}{"type": "string"},
				},
			},
			"required":             []string{"issues", "all_sources"},
			"additionalProperties": false,
		},
	}
}

func (s *FactCheckService) completionRequest(text string, analyzer config.AnalyzerConfig) llm.CompletionRequest {
	return llm.CompletionRequest{
		Prompt:          factCheckPrompt(text),
		SystemPrompt:    factCheckSystemPrompt,
		Model:           analyzer.Model,
		ResponseSchema:  factCheckSchema(),
		ReasoningEffort: analyzer.ReasoningEffort,
	}
}

// CheckText runs one blocking fact-check and returns the full report.
func (s *FactCheckService) CheckText(ctx context.Context, text string, show models.Visibility, analyzer config.AnalyzerConfig) (*models.FactCheckReport, error) {
	if strings.TrimSpace(text) == "" {
		return nil, apperrors.NewValidationError("no text to fact-check", ErrEmptyText)
	}

	s.semaphore <- struct{}{}
	defer func() { <-s.semaphore }()

	if s.LLMService == nil || !s.LLMService.IsReady() {
		return nil, apperrors.NewUnavailableError("configure the API key first", ErrLLMNotReady)
	}

	logger := utils.GetLogger()
	started := time.Now()

	var result models.FactCheckResult
	resp, err := s.LLMService.CreateStructuredCompletion(ctx, s.completionRequest(text, analyzer), &result)
	if err != nil {
		return nil, apperrors.WrapError(err, "fact check failed", apperrors.ErrorTypeError)
	}

	report := s.buildReport(text, result, show)
	report.Model = resp.ModelName
	report.Provider = resp.ProviderName
	report.TokensUsed = resp.TokensUsed

	logger.Info("fact check complete", map[string]interface{}{
		"text_bytes": len(text),
		"issues":     len(report.Issues),
		"segments":   len(report.Segments),
		"model":      report.Model,
		"elapsed":    time.Since(started).String(),
	})

	return report, nil
}

// StreamCheck runs one fact-check over the provider's streaming API,
// invoking onDelta for every chunk. Reconciliation happens exactly once,
// after the complete issue list has arrived; there is no partial
// reconciliation of streamed output.
func (s *FactCheckService) StreamCheck(ctx context.Context, text string, show models.Visibility, analyzer config.AnalyzerConfig, onDelta func(llm.StreamResponse)) (*models.FactCheckReport, error) {
	if strings.TrimSpace(text) == "" {
		return nil, apperrors.NewValidationError("no text to fact-check", ErrEmptyText)
	}

	s.semaphore <- struct{}{}
	defer func() { <-s.semaphore }()

	if s.LLMService == nil || !s.LLMService.IsReady() {
		return nil, apperrors.NewUnavailableError("configure the API key first", ErrLLMNotReady)
	}

	req := s.completionRequest(text, analyzer)
	req.Stream = true

	stream, err := s.LLMService.StreamCompletion(ctx, req)
	if err != nil {
		return nil, apperrors.WrapError(err, "fact check failed", apperrors.ErrorTypeError)
	}

	var resultText strings.Builder
	var modelName string
	for chunk := range stream {
		if chunk.ModelName != "" {
			modelName = chunk.ModelName
		}
		resultText.WriteString(chunk.Text)
		if onDelta != nil {
			onDelta(chunk)
		}
		if chunk.Done && chunk.FinishReason == "error" {
			return nil, apperrors.NewProcessingError("analyzer stream ended with an error", nil)
		}
	}

	raw := CleanLLMJSONResponse(resultText.String())
	if raw == "" {
		return nil, apperrors.NewProcessingError("no response received from the analyzer", nil)
	}

	var result models.FactCheckResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return nil, apperrors.NewProcessingError("failed to parse fact-check results", err)
	}

	report := s.buildReport(text, result, show)
	report.Model = modelName
	report.Provider = s.LLMService.GetProviderName()

	return report, nil
}

// buildReport reconciles the analyzer's issues against the original text
// and assembles the response payload. The issue list stays unfiltered;
// visibility only affects highlighting.
func (s *FactCheckService) buildReport(text string, result models.FactCheckResult, show models.Visibility) *models.FactCheckReport {
	segments := textspan.Reconcile(text, result.Issues, show)

	return &models.FactCheckReport{
		Text:       text,
		Issues:     result.Issues,
		Segments:   segments,
		HTML:       render.Highlight(segments),
		AllSources: models.ParseCitations(result.AllSources),
		CreatedAt:  time.Now(),
	}
}
