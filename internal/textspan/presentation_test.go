// internal/textspan/presentation_test.go
package textspan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Corphon/FactLens/internal/models"
)

func TestStylePlainSegment(t *testing.T) {
	_, ok := Style(models.Segment{Start: 0, End: 4, Text: "text"})
	assert.False(t, ok)
}

func TestStyleSingleIssue(t *testing.T) {
	seg := models.Segment{
		Issues: []models.CoveredIssue{
			{Index: 2, Issue: models.Issue{Kind: models.KindMisleading}},
		},
	}

	style, ok := Style(seg)
	require.True(t, ok)
	assert.Equal(t, "#ffcccc", style.Background)
	assert.Empty(t, style.Accent)
	assert.Equal(t, "3", style.BadgeText, "1-based issue number")
	assert.Equal(t, "single", style.BadgeKind)
}

// Multi-issue segments: primary kind picks the background, the SECOND
// issue's kind picks the accent, and the badge shows the covering count.
func TestStyleMultipleIssuesAsymmetry(t *testing.T) {
	seg := models.Segment{
		Issues: []models.CoveredIssue{
			{Index: 0, Issue: models.Issue{Kind: models.KindQuestionable}},
			{Index: 1, Issue: models.Issue{Kind: models.KindIncomplete}},
			{Index: 4, Issue: models.Issue{Kind: models.KindMisleading}},
		},
	}

	style, ok := Style(seg)
	require.True(t, ok)
	assert.Equal(t, "#fff4cc", style.Background, "primary kind background")
	assert.Equal(t, "#0066cc", style.Accent, "second issue's accent, not a blend")
	assert.Equal(t, "3", style.BadgeText, "count badge for multi")
	assert.Equal(t, "multiple", style.BadgeKind)
}

func TestStyleUnknownKindFallsBack(t *testing.T) {
	seg := models.Segment{
		Issues: []models.CoveredIssue{
			{Index: 0, Issue: models.Issue{Kind: "exotic"}},
			{Index: 1, Issue: models.Issue{Kind: "exotic"}},
		},
	}

	style, ok := Style(seg)
	require.True(t, ok)
	assert.Equal(t, "#fff4cc", style.Background)
	assert.Equal(t, "#333", style.Accent)
}
