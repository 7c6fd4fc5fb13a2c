// internal/textspan/locate_test.go
package textspan

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func locateIn(t *testing.T, original, excerpt string) (Range, bool) {
	t.Helper()
	logical, posmap := Strip(original)
	return Locate(original, logical, posmap, excerpt)
}

func TestLocateExactMatch(t *testing.T) {
	original := "The Eiffel Tower is 330 metres tall."
	r, ok := locateIn(t, original, "330 metres")

	require.True(t, ok)
	assert.Equal(t, strings.Index(original, "330 metres"), r.Start)
	assert.Equal(t, r.Start+len("330 metres"), r.End)
}

func TestLocateExactMatchFirstOccurrence(t *testing.T) {
	original := "alpha beta gamma beta delta"
	r, ok := locateIn(t, original, "beta")

	require.True(t, ok)
	assert.Equal(t, 6, r.Start)
	assert.Equal(t, 10, r.End)
}

// The canonical fallback scenario: the analyzer quotes the sentence
// without the inline source link the original carries. The returned range
// must span through the closing period in the original, annotation
// included.
func TestLocateFallbackThroughAnnotation(t *testing.T) {
	original := "Paris is the capital (https://example.com/1)."
	r, ok := locateIn(t, original, "Paris is the capital.")

	require.True(t, ok)
	assert.Equal(t, 0, r.Start)
	assert.Equal(t, len(original), r.End)
}

func TestLocateFallbackMidText(t *testing.T) {
	original := "Intro. The GDP grew 3% (https://stats.example/q2) last year. Outro."
	r, ok := locateIn(t, original, "The GDP grew 3% last year.")

	require.True(t, ok)
	assert.Equal(t, strings.Index(original, "The GDP"), r.Start)
	assert.Equal(t, strings.Index(original, " Outro."), r.End)
}

func TestLocateExcerptWithAnnotationMatchesExactly(t *testing.T) {
	original := "Paris is the capital (https://example.com/1)."
	excerpt := "capital (https://example.com/1)"
	r, ok := locateIn(t, original, excerpt)

	require.True(t, ok)
	assert.Equal(t, strings.Index(original, excerpt), r.Start)
}

func TestLocateUnlocatableExcerpt(t *testing.T) {
	_, ok := locateIn(t, "some ordinary text", "not present anywhere")
	assert.False(t, ok)
}

func TestLocateEmptyExcerpt(t *testing.T) {
	_, ok := locateIn(t, "some ordinary text", "")
	assert.False(t, ok)

	_, ok = locateIn(t, "some ordinary text", "   \n\t ")
	assert.False(t, ok)
}

func TestLocateTrimsExcerptWhitespace(t *testing.T) {
	original := "plain statement here"
	r, ok := locateIn(t, original, "  statement  ")

	require.True(t, ok)
	assert.Equal(t, strings.Index(original, "statement"), r.Start)
	assert.Equal(t, r.Start+len("statement"), r.End)
}

func TestLocateAnnotationOnlyExcerptFails(t *testing.T) {
	// The excerpt strips down to nothing, so neither strategy can match.
	original := "text without that link"
	_, ok := locateIn(t, original, "(https://example.com/gone)")
	assert.False(t, ok)
}
