package views

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hubgrip/internal/search"
)

func readyState(selected string) search.State {
	return search.State{
		Phase:       search.PhaseResultsReady,
		Query:       "acme",
		SelectedKey: selected,
		Groups: []search.Group{
			{ID: "team", Label: "Teams", Items: []search.Result{
				{Type: search.TypeTeam, Key: "team:1", Title: "Acme Team", Subtitle: "@acme"},
			}},
		},
	}
}

func TestRenderGroupsShowsLabelsResultsAndSeeAll(t *testing.T) {
	t.Parallel()

	out := RenderGroups(NewStyles(), readyState(""), 60, false)
	assert.Contains(t, out, "Teams")
	assert.Contains(t, out, "Acme Team")
	assert.Contains(t, out, "See all results for “acme”")
	assert.NotContains(t, out, "▸", "nothing selected, no cursor marker")
}

func TestRenderGroupsMarksSelection(t *testing.T) {
	t.Parallel()

	out := RenderGroups(NewStyles(), readyState("team:1"), 60, false)
	assert.Contains(t, out, "▸ Acme Team")
}

func TestRenderGroupsShowsCounts(t *testing.T) {
	t.Parallel()

	out := RenderGroups(NewStyles(), readyState(""), 60, true)
	assert.Contains(t, out, "Teams (1)")
}

func TestRenderGroupsEmpty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, RenderGroups(NewStyles(), search.State{}, 60, false))
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "short", truncate("short", 10))
	got := truncate("a much longer subtitle than fits", 10)
	assert.Equal(t, 10, len([]rune(got)))
	assert.True(t, strings.HasSuffix(got, "…"))
}

func TestStripANSI(t *testing.T) {
	t.Parallel()

	styled := NewStyles().StatusError.Render("plain text")
	assert.Equal(t, "plain text", stripANSI(styled))
}

func TestOverlayCentersPopupOverBackground(t *testing.T) {
	t.Parallel()

	background := strings.Repeat("bg line\n", 9) + "bg line"
	out := RenderPopup(NewStyles(), background, "POPUP", 40, 10)

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 10)

	var popupLines int
	for _, line := range lines {
		if strings.Contains(line, "POPUP") {
			popupLines++
		}
	}
	assert.NotZero(t, popupLines, "the popup content must appear in the overlay")
	assert.NotContains(t, lines[0], "POPUP", "the popup is centered, not at the top")
}
