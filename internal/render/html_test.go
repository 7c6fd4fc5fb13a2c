// internal/render/html_test.go
package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Corphon/FactLens/internal/models"
	"github.com/Corphon/FactLens/internal/textspan"
)

func TestHighlightPlainTextEscaped(t *testing.T) {
	segments := []models.Segment{{Start: 0, End: 11, Text: "a < b & c>d"}}
	out := Highlight(segments)

	assert.Equal(t, "a &lt; b &amp; c&gt;d", out)
	assert.NotContains(t, out, "<mark")
}

func TestHighlightCoveredSegment(t *testing.T) {
	issues := []models.Issue{
		{Excerpt: "flagged", Kind: models.KindMisleading, Explanation: "wrong",
			Sources: []string{"https://src.example/1"}},
	}
	segments := textspan.Reconcile("before flagged after", issues, models.ShowAll())
	out := Highlight(segments)

	assert.Contains(t, out, `<mark class="fact-issue"`)
	assert.Contains(t, out, `data-badge-text="1"`)
	assert.Contains(t, out, `data-badge-type="single"`)
	assert.Contains(t, out, "background-color: #ffcccc")
	assert.Contains(t, out, "border: 2px solid transparent")
	assert.Contains(t, out, "Issue #1 (Misleading):")
	assert.Contains(t, out, "1. https://src.example/1")
}

func TestHighlightOverlapAccentAndCountBadge(t *testing.T) {
	issues := []models.Issue{
		{Excerpt: "abcdefghij", Kind: models.KindQuestionable},
		{Excerpt: "fghijklmno", Kind: models.KindIncomplete},
	}
	segments := textspan.Reconcile("abcdefghijklmnopqrst", issues, models.ShowAll())
	out := Highlight(segments)

	assert.Contains(t, out, `data-badge-text="2"`)
	assert.Contains(t, out, `data-badge-type="multiple"`)
	assert.Contains(t, out, "border: 2px solid #0066cc", "second issue picks the accent")
	assert.Contains(t, out, "---", "tooltip divider between stacked issues")
}

func TestHighlightEscapesSegmentText(t *testing.T) {
	issues := []models.Issue{{Excerpt: "<script>", Kind: models.KindMisleading}}
	segments := textspan.Reconcile("safe <script> rest", issues, models.ShowAll())
	out := Highlight(segments)

	assert.NotContains(t, out, "><script><")
	assert.Contains(t, out, "&lt;script&gt;")
}

func TestIssueListOrderAndNumbering(t *testing.T) {
	issues := []models.Issue{
		{Excerpt: "q", Kind: models.KindQuestionable, Explanation: "maybe"},
		{Excerpt: "m", Kind: models.KindMisleading, Explanation: "no"},
		{Kind: models.KindIncomplete, Explanation: "gap"},
	}
	out := IssueList(issues)

	mi := strings.Index(out, "Issue #2: Misleading")
	in := strings.Index(out, "Issue #3: Incomplete")
	qu := strings.Index(out, "Issue #1: Questionable")
	require.NotEqual(t, -1, mi)
	require.NotEqual(t, -1, in)
	require.NotEqual(t, -1, qu)

	assert.Less(t, mi, in, "misleading listed before incomplete")
	assert.Less(t, in, qu, "incomplete listed before questionable")
	assert.Contains(t, out, "&quot;N/A&quot;", "empty excerpt shown as N/A")
}

func TestSourceList(t *testing.T) {
	out := SourceList([]models.Citation{
		{Kind: models.CitationLink, URL: "https://a.example"},
		{Kind: models.CitationPlain, Text: "A printed source & notes"},
	})

	assert.Contains(t, out, `<a href="https://a.example"`)
	assert.Contains(t, out, "2. A printed source &amp; notes")
}

func TestLegendListsAllKinds(t *testing.T) {
	out := Legend()
	for _, kind := range []string{"Misleading", "Questionable", "Incomplete"} {
		assert.Contains(t, out, kind)
	}
}
