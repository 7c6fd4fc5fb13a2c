// internal/services/llm_service.go
package services

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/Corphon/FactLens/internal/config"
	"github.com/Corphon/FactLens/internal/llm"
)

var ErrLLMNotReady = errors.New("llm service not ready")

const defaultModel = "openai/gpt-5"

// LLMService is the unified gateway to the configured analyzer provider.
type LLMService struct {
	providerMutex      sync.RWMutex
	provider           llm.Provider
	providerName       string
	cache              *LLMCache
	isReady            bool
	readyState         string
	activeDefaultModel string
}

type LLMCache struct {
	cache      map[string]*CacheEntry
	mutex      sync.RWMutex
	expiration time.Duration
}

type CacheEntry struct {
	Response  interface{}
	CreatedAt time.Time
}

// NewLLMService builds a service from the current configuration. A
// missing or invalid provider configuration yields a not-ready service
// rather than an error, so the server can start and be configured later.
func NewLLMService() (*LLMService, error) {
	service := createBaseLLMService()

	cfg := config.GetCurrentConfig()
	if cfg == nil {
		service.readyState = "Failed to retrieve configuration"
		return service, nil
	}

	if cfg.LLMProvider == "" || (cfg.LLMConfig != nil && cfg.LLMConfig["api_key"] == "") {
		service.readyState = "API key not configured"
		return service, nil
	}

	provider, err := llm.GetProvider(cfg.LLMProvider, cfg.LLMConfig)
	if err != nil {
		service.readyState = fmt.Sprintf("Initialization failed: %v", err)
		return service, nil
	}

	service.provider = provider
	service.providerName = cfg.LLMProvider
	service.activeDefaultModel = cfg.LLMConfig["default_model"]
	service.isReady = true
	service.readyState = "Ready"

	return service, nil
}

// NewLLMServiceWithProvider wraps an already-initialized provider. Used by
// tests and by callers that manage provider lifecycle themselves.
func NewLLMServiceWithProvider(provider llm.Provider) *LLMService {
	service := createBaseLLMService()
	if provider == nil {
		service.providerName = "empty"
		service.readyState = "Provider not initialized"
		return service
	}

	service.provider = provider
	service.providerName = provider.GetName()
	service.isReady = true
	service.readyState = "Ready"
	return service
}

func createBaseLLMService() *LLMService {
	return &LLMService{
		readyState: "Uninitialized",
		cache: &LLMCache{
			cache:      make(map[string]*CacheEntry),
			expiration: 30 * time.Minute,
		},
	}
}

// IsReady reports whether the service can issue completions.
func (s *LLMService) IsReady() bool {
	s.providerMutex.RLock()
	defer s.providerMutex.RUnlock()
	return s.provider != nil && s.isReady
}

// GetReadyState returns a human-readable readiness description.
func (s *LLMService) GetReadyState() string {
	s.providerMutex.RLock()
	defer s.providerMutex.RUnlock()

	if s.provider != nil && s.isReady {
		return "Ready"
	}
	return s.readyState
}

// GetProviderStatus returns readiness plus its description.
func (s *LLMService) GetProviderStatus() (bool, string) {
	if s == nil {
		return false, "LLM service not initialized"
	}
	if s.IsReady() {
		return true, "Ready"
	}
	return false, s.GetReadyState()
}

// UpdateProvider swaps in a newly configured provider and clears the
// response cache.
func (s *LLMService) UpdateProvider(providerName string, providerConfig map[string]string) error {
	provider, err := llm.GetProvider(providerName, providerConfig)
	if err != nil {
		s.providerMutex.Lock()
		s.isReady = false
		s.readyState = fmt.Sprintf("Configuration failed: %v", err)
		s.providerMutex.Unlock()
		return err
	}

	s.providerMutex.Lock()
	defer s.providerMutex.Unlock()

	s.provider = provider
	s.providerName = providerName
	s.activeDefaultModel = providerConfig["default_model"]
	s.isReady = true
	s.readyState = "Ready"

	s.cache = &LLMCache{
		cache:      make(map[string]*CacheEntry),
		expiration: 30 * time.Minute,
	}

	return nil
}

// GetProvider returns the active provider, or nil when unconfigured.
func (s *LLMService) GetProvider() llm.Provider {
	s.providerMutex.RLock()
	defer s.providerMutex.RUnlock()
	return s.provider
}

// GetProviderName returns the active provider name.
func (s *LLMService) GetProviderName() string {
	s.providerMutex.RLock()
	defer s.providerMutex.RUnlock()
	return s.providerName
}

func (s *LLMService) resolveModel(model string) string {
	if model != "" {
		return model
	}
	s.providerMutex.RLock()
	defer s.providerMutex.RUnlock()
	if s.activeDefaultModel != "" {
		return s.activeDefaultModel
	}
	return defaultModel
}

func (s *LLMService) generateCacheKey(prompt, systemPrompt, model string) string {
	s.providerMutex.RLock()
	providerName := s.providerName
	s.providerMutex.RUnlock()

	hashInput := fmt.Sprintf("%s:::%s:::%s:::%s", prompt, systemPrompt, model, providerName)
	h := md5.New()
	h.Write([]byte(hashInput))
	return fmt.Sprintf("%x", h.Sum(nil))
}

func (c *LLMCache) getFromCache(key string) (interface{}, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	entry, exists := c.cache[key]
	if !exists {
		return nil, false
	}
	if time.Since(entry.CreatedAt) > c.expiration {
		return nil, false
	}
	return entry.Response, true
}

func (c *LLMCache) saveToCache(key string, response interface{}) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.cache[key] = &CacheEntry{
		Response:  response,
		CreatedAt: time.Now(),
	}

	if len(c.cache) > 1000 {
		c.cleanupOldest(100)
	}
}

func (c *LLMCache) cleanupOldest(count int) {
	type keyAge struct {
		key string
		age time.Time
	}

	entries := make([]keyAge, 0, len(c.cache))
	for k, v := range c.cache {
		entries = append(entries, keyAge{k, v.CreatedAt})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].age.Before(entries[j].age)
	})

	maxToDelete := min(count, len(entries))
	for i := 0; i < maxToDelete; i++ {
		delete(c.cache, entries[i].key)
	}
}

func (s *LLMService) checkAndUseCache(key string, out interface{}) bool {
	cached, ok := s.cache.getFromCache(key)
	if !ok {
		return false
	}
	data, err := json.Marshal(cached)
	if err != nil {
		return false
	}
	return json.Unmarshal(data, out) == nil
}

// CreateStructuredCompletion runs one completion and unmarshals the JSON
// payload into out. The raw response text is cleaned of markdown fences
// and stray punctuation first; models do not always honor strict schemas.
// Returns the provider response for model/usage reporting.
func (s *LLMService) CreateStructuredCompletion(ctx context.Context, req llm.CompletionRequest, out interface{}) (*llm.CompletionResponse, error) {
	s.providerMutex.RLock()
	if !s.isReady || s.provider == nil {
		state := s.readyState
		s.providerMutex.RUnlock()
		return nil, fmt.Errorf("%w: %s", ErrLLMNotReady, state)
	}
	provider := s.provider
	s.providerMutex.RUnlock()

	req.Model = s.resolveModel(req.Model)

	cacheKey := s.generateCacheKey(req.Prompt, req.SystemPrompt, req.Model)
	if s.checkAndUseCache(cacheKey, out) {
		return &llm.CompletionResponse{ModelName: req.Model, ProviderName: s.GetProviderName()}, nil
	}

	if req.SystemPrompt != "" {
		req.SystemPrompt += "\n\n"
	}
	req.SystemPrompt += "Return your response in valid JSON format, following the provided output schema, without adding explanations or preambles."

	resp, err := provider.CompleteText(ctx, req)
	if err != nil {
		return nil, err
	}

	text := cleanJSONString(resp.Text)
	if err := json.Unmarshal([]byte(text), out); err != nil {
		return nil, fmt.Errorf("failed to parse AI response into structured data: %w\nAI return: %s", err, text)
	}

	// Cache a snapshot, not the caller's pointer; out keeps mutating after
	// we return.
	if data, err := json.Marshal(out); err == nil {
		s.cache.saveToCache(cacheKey, json.RawMessage(data))
	}

	return resp, nil
}

// StreamCompletion forwards a streamed completion from the active
// provider.
func (s *LLMService) StreamCompletion(ctx context.Context, req llm.CompletionRequest) (<-chan llm.StreamResponse, error) {
	s.providerMutex.RLock()
	if !s.isReady || s.provider == nil {
		state := s.readyState
		s.providerMutex.RUnlock()
		return nil, fmt.Errorf("%w: %s", ErrLLMNotReady, state)
	}
	provider := s.provider
	s.providerMutex.RUnlock()

	req.Model = s.resolveModel(req.Model)
	req.Stream = true

	return provider.StreamCompletion(ctx, req)
}

// ------------------------------------------------
// JSON cleanup for model output. Strips markdown fences, BOMs, zero-width
// characters and full-width punctuation, then cuts the string down to the
// first balanced JSON value.

var jsonNoiseReplacer = strings.NewReplacer(
	"```json", "",
	"```", "",
	"\ufeff", "",
	"\u00a0", " ",
	"\u2028", "\n",
	"\u2029", "\n",
)

var structuralPunctuationMap = map[rune]rune{
	'：': ':',
	'﹕': ':',
	'，': ',',
	'﹐': ',',
	'；': ';',
	'﹔': ';',
	'【': '[',
	'】': ']',
	'［': '[',
	'］': ']',
	'｛': '{',
	'｝': '}',
	'（': '(',
	'）': ')',
}

var quotePairs = map[rune]rune{
	'"': '"',
	'“': '”',
	'”': '”',
	'„': '”',
	'‟': '”',
	'「': '」',
	'」': '」',
	'『': '』',
	'﹁': '﹂',
	'﹂': '﹂',
}

func normalizeJSONStructure(s string) string {
	if s == "" {
		return s
	}

	var builder strings.Builder
	builder.Grow(len(s))
	inString := false
	escaped := false
	currentClosing := '"'

	for _, r := range s {
		if inString {
			if !escaped && r == '\\' {
				escaped = true
				builder.WriteRune(r)
				continue
			}

			if escaped {
				escaped = false
				builder.WriteRune(r)
				continue
			}

			if r == currentClosing || r == '"' {
				inString = false
				currentClosing = '"'
				builder.WriteRune('"')
				continue
			}

			builder.WriteRune(r)
			continue
		}

		if replacement, ok := structuralPunctuationMap[r]; ok {
			r = replacement
		} else if closing, ok := quotePairs[r]; ok {
			inString = true
			currentClosing = closing
			builder.WriteRune('"')
			continue
		} else if r == '"' {
			inString = true
			currentClosing = '"'
			builder.WriteRune(r)
			continue
		} else if r > unicode.MaxASCII && !unicode.IsSpace(r) {
			// Drop stray non-ASCII noise outside strings.
			continue
		}

		builder.WriteRune(r)
	}

	return builder.String()
}

func cleanJSONString(s string) string {
	if s == "" {
		return s
	}

	s = jsonNoiseReplacer.Replace(s)
	s = strings.TrimSpace(s)

	s = strings.Map(func(r rune) rune {
		switch r {
		case '\u200b', '\u200c', '\u200d', '\u2060', '\ufeff':
			return -1
		}
		if unicode.IsControl(r) && r != '\n' && r != '\r' && r != '\t' {
			return -1
		}
		return r
	}, s)

	start := strings.IndexAny(s, "[{")
	if start == -1 {
		return s
	}

	s = strings.TrimSpace(s[start:])
	if s == "" {
		return s
	}

	s = normalizeJSONStructure(s)

	isArray := len(s) > 0 && s[0] == '['

	balance := 0
	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
		char := s[i]

		if escaped {
			escaped = false
			continue
		}

		if char == '\\' {
			escaped = true
			continue
		}

		if char == '"' {
			inString = !inString
			continue
		}

		if !inString {
			if isArray {
				if char == '[' {
					balance++
				} else if char == ']' {
					balance--
				}
			} else {
				if char == '{' {
					balance++
				} else if char == '}' {
					balance--
				}
			}

			if balance == 0 {
				return strings.TrimSpace(s[:i+1])
			}
		}
	}

	// No balanced close found; fall back to the last closer.
	end := -1
	if isArray {
		end = strings.LastIndex(s, "]")
	} else {
		end = strings.LastIndex(s, "}")
	}

	if end != -1 {
		return strings.TrimSpace(s[:end+1])
	}

	return strings.TrimSpace(s)
}

// CleanLLMJSONResponse is the JSON cleanup helper exposed to callers that
// accumulate streamed output themselves.
func CleanLLMJSONResponse(raw string) string {
	return cleanJSONString(raw)
}
