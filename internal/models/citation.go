// internal/models/citation.go
package models

import "strings"

// CitationKind distinguishes the two source entry shapes produced by the
// analyzer.
type CitationKind string

const (
	CitationPlain CitationKind = "plain"
	CitationLink  CitationKind = "link"
)

// Citation is a tagged variant over analyzer source entries: either a
// plain-text reference or a linkable URL.
type Citation struct {
	Kind CitationKind `json:"kind"`
	Text string       `json:"text,omitempty"`
	URL  string       `json:"url,omitempty"`
}

// ParseCitation classifies a raw source string. Anything that looks like
// an http(s) URL becomes a link citation.
func ParseCitation(raw string) Citation {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") {
		return Citation{Kind: CitationLink, URL: s}
	}
	return Citation{Kind: CitationPlain, Text: s}
}

// ParseCitations classifies a list of raw source strings, preserving order.
func ParseCitations(raw []string) []Citation {
	out := make([]Citation, 0, len(raw))
	for _, s := range raw {
		out = append(out, ParseCitation(s))
	}
	return out
}
