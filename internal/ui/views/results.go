package views

import (
	"fmt"
	"strings"

	"hubgrip/internal/search"
)

// RenderGroups renders the grouped autocomplete results with the cursor
// highlight and the trailing see-all entry. Width bounds each line so the
// highlight bar spans the full dropdown.
func RenderGroups(styles *Styles, st search.State, width int, showCounts bool) string {
	if len(st.Groups) == 0 {
		return ""
	}

	var b strings.Builder
	for _, g := range st.Groups {
		label := g.Label
		if showCounts {
			label = fmt.Sprintf("%s (%d)", g.Label, len(g.Items))
		}
		b.WriteString(styles.GroupLabel.Render(label))
		b.WriteString("\n")
		for _, r := range g.Items {
			b.WriteString(renderResult(styles, r, st.IsSelected(r), width))
			b.WriteString("\n")
		}
	}

	seeAll := styles.SeeAll.Render("See all results for “" + st.Query + "”")
	if st.SeeAllSelected() {
		seeAll = styles.SelectionBg.Width(width).Render("See all results for “" + st.Query + "”")
	}
	b.WriteString(seeAll)

	return b.String()
}

func renderResult(styles *Styles, r search.Result, selected bool, width int) string {
	title := styles.ResultTitle.Render(r.Title)
	line := "  " + title
	if r.Subtitle != "" {
		line += "  " + styles.ResultSub.Render(truncate(r.Subtitle, width/2))
	}
	if selected {
		return styles.SelectionBg.Width(width).Render("▸ " + r.Title + subtitleSuffix(r, width))
	}
	return line
}

func subtitleSuffix(r search.Result, width int) string {
	if r.Subtitle == "" {
		return ""
	}
	return "  " + truncate(r.Subtitle, width/2)
}

func truncate(s string, max int) string {
	if max < 4 {
		max = 4
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}

// RenderStatus renders the engine phase line under the input
func RenderStatus(styles *Styles, st search.State) string {
	switch st.Phase {
	case search.PhaseQuerying:
		return styles.StatusLoading.Render("Searching…")
	case search.PhaseResultsReady:
		if len(st.Groups) == 0 {
			return styles.Dim.Render("No results for “" + st.Query + "”")
		}
		return ""
	default:
		return styles.Dim.Render("Type to search teams, users, projects and collections")
	}
}
