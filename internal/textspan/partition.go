// internal/textspan/partition.go
package textspan

import (
	"sort"

	"github.com/Corphon/FactLens/internal/models"
)

// Partition merges located ranges into an ordered, gap-free sequence of
// segments covering exactly [0, len(original)). Every range start and end
// becomes a segment boundary, so the set of covering issues is constant
// across each segment. Within a segment the covering issues are ordered by
// ascending issue index.
//
// An empty range list over non-empty text yields a single plain segment;
// empty text yields an empty partition.
func Partition(original string, issues []models.Issue, ranges []models.LocatedRange) []models.Segment {
	n := len(original)

	ordered := make([]models.LocatedRange, len(ranges))
	copy(ordered, ranges)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].IssueIndex < ordered[j].IssueIndex
	})

	// Dense per-offset covering table. Adequate for prose-sized inputs;
	// the contract is the boundary set plus per-segment covering sets.
	covering := make([][]models.LocatedRange, n)
	for _, r := range ordered {
		for p := max(r.Start, 0); p < r.End && p < n; p++ {
			covering[p] = append(covering[p], r)
		}
	}

	boundarySet := map[int]struct{}{0: {}, n: {}}
	for _, r := range ranges {
		boundarySet[clamp(r.Start, 0, n)] = struct{}{}
		boundarySet[clamp(r.End, 0, n)] = struct{}{}
	}

	boundaries := make([]int, 0, len(boundarySet))
	for b := range boundarySet {
		boundaries = append(boundaries, b)
	}
	sort.Ints(boundaries)

	segments := make([]models.Segment, 0, len(boundaries))
	for i := 0; i+1 < len(boundaries); i++ {
		start, end := boundaries[i], boundaries[i+1]

		var covered []models.CoveredIssue
		for _, r := range covering[start] {
			covered = append(covered, models.CoveredIssue{
				Index: r.IssueIndex,
				Issue: issues[r.IssueIndex],
			})
		}

		segments = append(segments, models.Segment{
			Start:  start,
			End:    end,
			Text:   original[start:end],
			Issues: covered,
		})
	}

	return segments
}

// Reconcile is the full excerpt-to-segment pipeline for one request:
// filter issues by the visibility predicate, locate each surviving
// excerpt, then partition the located ranges. Issues whose excerpt cannot
// be located contribute no range and are silently absent from every
// segment's covering list.
func Reconcile(original string, issues []models.Issue, visible models.Visibility) []models.Segment {
	logical, posmap := Strip(original)

	var ranges []models.LocatedRange
	for idx, issue := range issues {
		if !visible.Allows(issue.Kind) {
			continue
		}
		r, ok := Locate(original, logical, posmap, issue.Excerpt)
		if !ok {
			continue
		}
		ranges = append(ranges, models.LocatedRange{
			Start:      r.Start,
			End:        r.End,
			IssueIndex: idx,
		})
	}

	return Partition(original, issues, ranges)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
