// internal/llm/interface.go
package llm

import (
	"context"
	"errors"
)

var ErrUnknownProvider = errors.New("unknown LLM provider")

// ResponseSchema requests strict JSON-schema constrained output from
// providers that support it (OpenAI-compatible response_format).
type ResponseSchema struct {
	Name   string                 `json:"name"`
	Strict bool                   `json:"strict"`
	Schema map[string]interface{} `json:"schema"`
}

// CompletionRequest is the normalized request shape shared by all
// providers.
type CompletionRequest struct {
	Prompt          string                 `json:"prompt"`
	SystemPrompt    string                 `json:"system_prompt,omitempty"`
	MaxTokens       int                    `json:"max_tokens,omitempty"`
	Temperature     float32                `json:"temperature,omitempty"`
	TopP            float32                `json:"top_p,omitempty"`
	Model           string                 `json:"model,omitempty"`
	StopWords       []string               `json:"stop_words,omitempty"`
	Stream          bool                   `json:"stream,omitempty"`
	ResponseSchema  *ResponseSchema        `json:"response_schema,omitempty"`
	ReasoningEffort string                 `json:"reasoning_effort,omitempty"`
	ExtraParams     map[string]interface{} `json:"extra_params,omitempty"`
}

// CompletionResponse is the normalized response shape.
type CompletionResponse struct {
	Text         string `json:"text"`
	Reasoning    string `json:"reasoning,omitempty"`
	FinishReason string `json:"finish_reason,omitempty"`
	TokensUsed   int    `json:"tokens_used,omitempty"`
	PromptTokens int    `json:"prompt_tokens,omitempty"`
	OutputTokens int    `json:"output_tokens,omitempty"`
	ModelName    string `json:"model_name,omitempty"`
	ProviderName string `json:"provider_name,omitempty"`
}

// StreamResponse is one incremental chunk of a streamed completion.
type StreamResponse struct {
	Text         string `json:"text"`
	Reasoning    string `json:"reasoning,omitempty"`
	FinishReason string `json:"finish_reason,omitempty"`
	ModelName    string `json:"model_name,omitempty"`
	Done         bool   `json:"done"`
}

// Provider is the contract every analyzer backend implements.
type Provider interface {
	// Initialize configures the provider from a flat config map.
	Initialize(config map[string]string) error

	// GetName returns the provider's display name.
	GetName() string

	// GetSupportedModels returns the models this provider can route to.
	GetSupportedModels() []string

	// CompleteText runs one blocking completion.
	CompleteText(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)

	// StreamCompletion runs one streamed completion; the channel closes
	// after the final chunk.
	StreamCompletion(ctx context.Context, req CompletionRequest) (<-chan StreamResponse, error)

	// FetchAvailableModels refreshes the model list from the provider API
	// where supported.
	FetchAvailableModels(ctx context.Context) error

	// SetCustomModels overrides the model list.
	SetCustomModels(models []string)
}

// ProviderFactory builds an unconfigured provider instance.
type ProviderFactory func() Provider

var providers = make(map[string]ProviderFactory)

// Register adds a provider factory under the given name. Provider
// packages call this from init().
func Register(name string, factory ProviderFactory) {
	providers[name] = factory
}

// GetProvider creates and initializes the named provider.
func GetProvider(name string, config map[string]string) (Provider, error) {
	factory, exists := providers[name]
	if !exists {
		return nil, ErrUnknownProvider
	}

	provider := factory()
	if err := provider.Initialize(config); err != nil {
		return nil, err
	}
	return provider, nil
}

// ListProviders returns all registered provider names.
func ListProviders() []string {
	names := make([]string, 0, len(providers))
	for name := range providers {
		names = append(names, name)
	}
	return names
}

// GetSupportedModelsForProvider returns the model list of a registered
// provider without initializing it.
func GetSupportedModelsForProvider(name string) []string {
	factory, exists := providers[name]
	if !exists {
		return []string{}
	}
	return factory().GetSupportedModels()
}
