// internal/api/error_codes.go
package api

// API error code constants
const (
	// Generic errors
	ErrorBadRequest    = "BAD_REQUEST"
	ErrorNotFound      = "NOT_FOUND"
	ErrorInternalError = "INTERNAL_ERROR"
	ErrorConflict      = "CONFLICT"

	// Fact-check errors
	ErrorEmptyText       = "EMPTY_TEXT"
	ErrorTextTooLarge    = "TEXT_TOO_LARGE"
	ErrorFactCheckFailed = "FACT_CHECK_FAILED"
	ErrorResultsInvalid  = "RESULTS_INVALID"

	// Analyzer service errors
	ErrorLLMServiceUnavailable = "LLM_SERVICE_UNAVAILABLE"
	ErrorLLMConfigInvalid      = "LLM_CONFIG_INVALID"
	ErrorConnectionFailed      = "CONNECTION_FAILED"

	// Settings errors
	ErrorSettingsInvalid     = "SETTINGS_INVALID"
	ErrorSettingsSaveFailed  = "SETTINGS_SAVE_FAILED"
	ErrorProviderUnsupported = "PROVIDER_UNSUPPORTED"
)
