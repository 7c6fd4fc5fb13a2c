// internal/render/html.go
package render

import (
	"fmt"
	"html"
	"sort"
	"strings"

	"github.com/Corphon/FactLens/internal/models"
	"github.com/Corphon/FactLens/internal/textspan"
)

// Highlight renders a reconciled segment sequence as an HTML fragment.
// Plain segments become escaped text; covered segments become <mark>
// elements carrying the tooltip, badge and color metadata the viewer
// script consumes. The renderer owns all escaping; segment boundaries and
// metadata come from the core untouched.
func Highlight(segments []models.Segment) string {
	var b strings.Builder

	for _, seg := range segments {
		style, ok := textspan.Style(seg)
		if !ok {
			b.WriteString(html.EscapeString(seg.Text))
			continue
		}

		ids := make([]string, 0, len(seg.Issues))
		for _, ci := range seg.Issues {
			ids = append(ids, fmt.Sprintf("%d", ci.Index))
		}

		border := "2px solid transparent"
		if style.Accent != "" {
			border = "2px solid " + style.Accent
		}

		fmt.Fprintf(&b,
			`<mark class="fact-issue" data-issue-ids="%s" data-tooltip="%s" data-badge-text="%s" data-badge-type="%s" style="background-color: %s; color: #000; padding: 2px 4px; border-radius: 3px; cursor: pointer; border: %s;">%s</mark>`,
			strings.Join(ids, ","),
			html.EscapeString(tooltip(seg.Issues)),
			style.BadgeText,
			style.BadgeKind,
			style.Background,
			border,
			html.EscapeString(seg.Text))
	}

	return b.String()
}

// tooltip builds the plain-text tooltip body for one covered segment:
// numbered issue headers, explanations, numbered sources, with a ---
// divider between stacked issues.
func tooltip(issues []models.CoveredIssue) string {
	var parts []string

	for i, ci := range issues {
		parts = append(parts, fmt.Sprintf("Issue #%d (%s):", ci.Index+1, ci.Issue.Kind.Title()))
		explanation := ci.Issue.Explanation
		if explanation == "" {
			explanation = "No explanation"
		}
		parts = append(parts, explanation)

		if len(ci.Issue.Sources) > 0 {
			parts = append(parts, "\nSources:")
			for n, src := range ci.Issue.Sources {
				parts = append(parts, fmt.Sprintf("%d. %s", n+1, src))
			}
		}

		if i < len(issues)-1 {
			parts = append(parts, "\n---\n")
		}
	}

	return strings.Join(parts, "\n")
}

// kindListOrder is the display order of the per-issue listing below the
// highlighted text. Numbering still uses the issue's original index.
var kindListOrder = map[models.IssueKind]int{
	models.KindMisleading:   0,
	models.KindIncomplete:   1,
	models.KindQuestionable: 2,
}

var listBorderColors = map[models.IssueKind]string{
	models.KindMisleading:   "#ff4444",
	models.KindQuestionable: "#ffaa00",
	models.KindIncomplete:   "#4499ff",
}

// IssueList renders the unfiltered issue listing, grouped misleading
// first, then incomplete, then questionable. Unlocatable issues appear
// here even though they produce no highlight.
func IssueList(issues []models.Issue) string {
	type indexed struct {
		index int
		issue models.Issue
	}

	ordered := make([]indexed, 0, len(issues))
	for i, issue := range issues {
		ordered = append(ordered, indexed{index: i, issue: issue})
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		oi, ok := kindListOrder[ordered[i].issue.Kind]
		if !ok {
			oi = 3
		}
		oj, ok := kindListOrder[ordered[j].issue.Kind]
		if !ok {
			oj = 3
		}
		return oi < oj
	})

	var b strings.Builder
	for _, entry := range ordered {
		issue := entry.issue

		border, ok := listBorderColors[issue.Kind]
		if !ok {
			border = "#555"
		}

		excerpt := issue.Excerpt
		if excerpt == "" {
			excerpt = "N/A"
		} else if len(excerpt) > 100 {
			excerpt = excerpt[:100] + "..."
		}

		var sources strings.Builder
		if len(issue.Sources) > 0 {
			sources.WriteString("<br><br><b>Sources:</b><br>")
			for n, c := range models.ParseCitations(issue.Sources) {
				if c.Kind == models.CitationLink {
					fmt.Fprintf(&sources, `%d. <a href="%s" target="_blank">%s</a><br>`,
						n+1, html.EscapeString(c.URL), html.EscapeString(c.URL))
				} else {
					fmt.Fprintf(&sources, "%d. %s<br>", n+1, html.EscapeString(c.Text))
				}
			}
		}

		fmt.Fprintf(&b,
			`<div id="issue-%d" class="issue-card" style="border-left: 4px solid %s;"><b>Issue #%d: %s</b><br><i>&quot;%s&quot;</i><br><br><div>%s</div>%s</div>`,
			entry.index,
			border,
			entry.index+1,
			issue.Kind.Title(),
			html.EscapeString(excerpt),
			html.EscapeString(issue.Explanation),
			sources.String())
	}

	return b.String()
}

// SourceList renders the consolidated all-sources listing.
func SourceList(sources []models.Citation) string {
	var b strings.Builder
	for n, c := range sources {
		if c.Kind == models.CitationLink {
			fmt.Fprintf(&b, `<div>%d. <a href="%s" target="_blank">%s</a></div>`,
				n+1, html.EscapeString(c.URL), html.EscapeString(c.URL))
		} else {
			fmt.Fprintf(&b, "<div>%d. %s</div>", n+1, html.EscapeString(c.Text))
		}
	}
	return b.String()
}

// Legend renders the static color legend shown with every report.
func Legend() string {
	return `<div class="fact-legend"><b>Legend:</b><br>` +
		`<mark style="background-color: #ffcccc; padding: 2px 4px; color: #000;">Misleading</mark> ` +
		`<mark style="background-color: #fff4cc; padding: 2px 4px; color: #000;">Questionable</mark> ` +
		`<mark style="background-color: #cce5ff; padding: 2px 4px; color: #000;">Incomplete</mark>` +
		`</div>`
}
