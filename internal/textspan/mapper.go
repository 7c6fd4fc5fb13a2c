// internal/textspan/mapper.go
package textspan

import (
	"regexp"
	"strings"
)

// annotationPattern matches one inline source-link annotation: optional
// leading whitespace, then a parenthesized http(s) URL with no closing
// parenthesis inside. Annotations ride on the preceding visible text and
// are not part of the logical reading flow.
var annotationPattern = regexp.MustCompile(`^\s*\(https?://[^)]+\)`)

// Strip removes every annotation run from original and returns the
// resulting logical text together with a position map: posmap[i] is the
// byte offset in original of the byte that became logical[i].
//
// Guarantees: len(logical) == len(posmap), posmap is strictly increasing,
// and original[posmap[i]] == logical[i] for every i.
func Strip(original string) (string, []int) {
	var logical strings.Builder
	posmap := make([]int, 0, len(original))

	i := 0
	for i < len(original) {
		if loc := annotationPattern.FindStringIndex(original[i:]); loc != nil {
			// The whole annotation is elided, whitespace included.
			i += loc[1]
			continue
		}
		logical.WriteByte(original[i])
		posmap = append(posmap, i)
		i++
	}

	return logical.String(), posmap
}
