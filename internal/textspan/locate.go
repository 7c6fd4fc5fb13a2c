// internal/textspan/locate.go
package textspan

import "strings"

// Range is a half-open [Start, End) byte range in original-text
// coordinates.
type Range struct {
	Start int
	End   int
}

// Locate resolves an analyzer excerpt to its byte range in the original
// text. Two strategies are tried in order, first success wins:
//
//  1. Exact substring search of the trimmed excerpt in the original text.
//     Excerpts usually are verbatim quotes, annotations included, so this
//     is the common case.
//  2. Fallback through the logical text: the excerpt is itself stripped of
//     annotations and searched in the stripped original; a hit is
//     translated back through the position map. This recovers excerpts the
//     analyzer quoted without the annotation suffix the original carries.
//
// Matching is always first occurrence. An empty (or whitespace-only)
// excerpt never matches; the issue simply contributes no highlight.
func Locate(original, logical string, posmap []int, excerpt string) (Range, bool) {
	excerpt = strings.TrimSpace(excerpt)
	if excerpt == "" {
		return Range{}, false
	}

	if pos := strings.Index(original, excerpt); pos != -1 {
		return Range{Start: pos, End: pos + len(excerpt)}, true
	}

	stripped, _ := Strip(excerpt)
	if stripped == "" {
		return Range{}, false
	}

	pos := strings.Index(logical, stripped)
	if pos == -1 {
		return Range{}, false
	}

	last := pos + len(stripped) - 1
	if last >= len(posmap) {
		return Range{}, false
	}

	return Range{Start: posmap[pos], End: posmap[last] + 1}, true
}
