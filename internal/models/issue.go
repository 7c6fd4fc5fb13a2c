// internal/models/issue.go
package models

import (
	"encoding/json"
	"strings"
)

// IssueKind classifies a flagged concern.
type IssueKind string

const (
	KindMisleading   IssueKind = "misleading"
	KindQuestionable IssueKind = "questionable"
	KindIncomplete   IssueKind = "incomplete"
)

// Valid reports whether k is one of the known kinds.
func (k IssueKind) Valid() bool {
	switch k {
	case KindMisleading, KindQuestionable, KindIncomplete:
		return true
	}
	return false
}

// Title returns the display form of the kind ("Misleading", ...).
func (k IssueKind) Title() string {
	if k == "" {
		return ""
	}
	return strings.ToUpper(string(k[:1])) + string(k[1:])
}

// Issue is one concern flagged by the analyzer. Excerpt is intended to be
// a verbatim quote from the submitted text; it may be empty for
// incomplete-kind issues that describe an absence rather than a flawed span.
type Issue struct {
	Excerpt     string    `json:"excerpt"`
	Explanation string    `json:"issue"`
	Kind        IssueKind `json:"type"`
	Sources     []string  `json:"sources"`
}

// UnmarshalJSON applies the analyzer-contract defaults instead of failing
// the whole batch: a missing or unknown type becomes questionable, missing
// sources become an empty list, and fields of the wrong JSON type are
// treated as absent.
func (i *Issue) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	out := Issue{
		Kind:    KindQuestionable,
		Sources: []string{},
	}

	if v, ok := raw["excerpt"]; ok {
		var s string
		if json.Unmarshal(v, &s) == nil {
			out.Excerpt = s
		}
	}
	if v, ok := raw["issue"]; ok {
		var s string
		if json.Unmarshal(v, &s) == nil {
			out.Explanation = s
		}
	}
	if v, ok := raw["type"]; ok {
		var s string
		if json.Unmarshal(v, &s) == nil {
			if k := IssueKind(strings.ToLower(strings.TrimSpace(s))); k.Valid() {
				out.Kind = k
			}
		}
	}
	if v, ok := raw["sources"]; ok {
		var list []string
		if json.Unmarshal(v, &list) == nil && list != nil {
			out.Sources = list
		}
	}

	*i = out
	return nil
}

// Visibility is the caller-supplied set of issue kinds that participate in
// highlighting. Filtering happens on the issue set before excerpts are
// located, not after.
type Visibility struct {
	Misleading   bool `json:"misleading"`
	Questionable bool `json:"questionable"`
	Incomplete   bool `json:"incomplete"`
}

// ShowAll enables every kind.
func ShowAll() Visibility {
	return Visibility{Misleading: true, Questionable: true, Incomplete: true}
}

// Allows reports whether issues of the given kind are highlighted.
func (v Visibility) Allows(k IssueKind) bool {
	switch k {
	case KindMisleading:
		return v.Misleading
	case KindIncomplete:
		return v.Incomplete
	default:
		return v.Questionable
	}
}
