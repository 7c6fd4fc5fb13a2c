// internal/textspan/presentation.go
package textspan

import (
	"strconv"

	"github.com/Corphon/FactLens/internal/models"
)

var backgroundColors = map[models.IssueKind]string{
	models.KindMisleading:   "#ffcccc",
	models.KindQuestionable: "#fff4cc",
	models.KindIncomplete:   "#cce5ff",
}

var accentColors = map[models.IssueKind]string{
	models.KindMisleading:   "#ff0000",
	models.KindQuestionable: "#ffa500",
	models.KindIncomplete:   "#0066cc",
}

const (
	defaultBackground = "#fff4cc"
	defaultAccent     = "#333"
)

// Style derives the presentation metadata for a highlighted segment. The
// primary issue (lowest index) selects the background color. When more
// than one issue covers the segment, the SECOND issue's kind selects the
// accent border and the badge shows the covering count; a single-issue
// segment's badge shows that issue's 1-based number instead. This
// asymmetry is kept for compatibility with the original renderer.
//
// The second return value is false for plain segments, which carry no
// style at all.
func Style(seg models.Segment) (models.SegmentStyle, bool) {
	if seg.Plain() {
		return models.SegmentStyle{}, false
	}

	primary := seg.Issues[0]
	style := models.SegmentStyle{
		Background: background(primary.Issue.Kind),
	}

	if len(seg.Issues) == 1 {
		style.BadgeText = strconv.Itoa(primary.Index + 1)
		style.BadgeKind = "single"
	} else {
		style.BadgeText = strconv.Itoa(len(seg.Issues))
		style.BadgeKind = "multiple"
		style.Accent = accent(seg.Issues[1].Issue.Kind)
	}

	return style, true
}

func background(k models.IssueKind) string {
	if c, ok := backgroundColors[k]; ok {
		return c
	}
	return defaultBackground
}

func accent(k models.IssueKind) string {
	if c, ok := accentColors[k]; ok {
		return c
	}
	return defaultAccent
}
