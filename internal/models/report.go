// internal/models/report.go
package models

import "time"

// FactCheckResult is the raw structured payload returned by the analyzer.
type FactCheckResult struct {
	Issues     []Issue  `json:"issues"`
	AllSources []string `json:"all_sources"`
}

// FactCheckReport is the full outcome of one fact-check request: the
// unfiltered issue list, the reconciled segment sequence, the rendered
// HTML, and the consolidated source list.
type FactCheckReport struct {
	Text       string     `json:"text"`
	Issues     []Issue    `json:"issues"`
	Segments   []Segment  `json:"segments"`
	HTML       string     `json:"html"`
	AllSources []Citation `json:"all_sources"`
	Model      string     `json:"model,omitempty"`
	Provider   string     `json:"provider,omitempty"`
	TokensUsed int        `json:"tokens_used,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}
