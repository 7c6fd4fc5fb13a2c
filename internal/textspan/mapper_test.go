// internal/textspan/mapper_test.go
package textspan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripRemovesAnnotations(t *testing.T) {
	original := "Paris is the capital (https://example.com/1)."
	logical, posmap := Strip(original)

	assert.Equal(t, "Paris is the capital.", logical)
	require.Len(t, posmap, len(logical))
	// The final period maps past the elided annotation.
	assert.Equal(t, len(original)-1, posmap[len(posmap)-1])
}

func TestStripElidesLeadingWhitespaceWithAnnotation(t *testing.T) {
	logical, _ := Strip("word (http://a.example/x) next")
	assert.Equal(t, "word next", logical)
}

func TestStripMultipleAnnotations(t *testing.T) {
	original := "A (https://a.example) and B (https://b.example)!"
	logical, posmap := Strip(original)

	assert.Equal(t, "A and B!", logical)
	assert.Len(t, posmap, len(logical))
}

func TestStripLeavesPlainParenthesesAlone(t *testing.T) {
	original := "A remark (not a link) stays."
	logical, posmap := Strip(original)

	assert.Equal(t, original, logical)
	assert.Len(t, posmap, len(original))
}

func TestStripUnclosedURLNotElided(t *testing.T) {
	original := "broken (https://example.com with no close"
	logical, _ := Strip(original)
	assert.Equal(t, original, logical)
}

func TestStripRoundTripProperties(t *testing.T) {
	texts := []string{
		"",
		"no annotations here at all",
		"Paris is the capital (https://example.com/1).",
		"x (http://a.b)(https://c.d) y",
		"unicode café (https://example.com/é) rest",
		"(https://lead.example) starts with one",
		"trailing space (https://t.example) ",
	}

	for _, original := range texts {
		logical, posmap := Strip(original)

		require.Len(t, posmap, len(logical), "len(logical) == len(posmap) for %q", original)
		for i := range posmap {
			if i > 0 {
				assert.Greater(t, posmap[i], posmap[i-1], "posmap strictly increasing for %q", original)
			}
			assert.Equal(t, original[posmap[i]], logical[i], "byte round-trip for %q at %d", original, i)
		}
	}
}
