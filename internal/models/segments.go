// internal/models/segments.go
package models

// LocatedRange is the resolved [Start, End) byte range of one issue's
// excerpt in the original text. IssueIndex is the issue's position in the
// analyzer's ordered response; it is the issue's permanent identity, used
// for display numbering and stable tie-breaking.
type LocatedRange struct {
	Start      int `json:"start"`
	End        int `json:"end"`
	IssueIndex int `json:"issue_index"`
}

// CoveredIssue pairs an issue with its permanent index for display.
type CoveredIssue struct {
	Index int   `json:"index"`
	Issue Issue `json:"issue"`
}

// Segment is a maximal run of the original text whose set of covering
// issues is constant. Segments partition the whole text with no gaps and
// no overlaps; a segment with an empty Issues list is plain text. Covering
// issues are ordered by ascending index.
type Segment struct {
	Start  int            `json:"start"`
	End    int            `json:"end"`
	Text   string         `json:"text"`
	Issues []CoveredIssue `json:"issues,omitempty"`
}

// Plain reports whether no issue covers the segment.
func (s Segment) Plain() bool {
	return len(s.Issues) == 0
}

// SegmentStyle is the presentation metadata the renderer needs for one
// highlighted segment.
type SegmentStyle struct {
	Background string `json:"background"`
	Accent     string `json:"accent,omitempty"`
	BadgeText  string `json:"badge_text"`
	BadgeKind  string `json:"badge_kind"` // "single" or "multiple"
}
