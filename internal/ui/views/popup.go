package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderPopup centers a bordered popup over a dimmed background view.
// lipgloss has no layering primitive, so the overlay is composed line by
// line: the popup block is spliced into the faint background.
func RenderPopup(styles *Styles, background, content string, width, height int) string {
	box := styles.PopupBox.MaxWidth(width - 4).Render(content)
	dimmed := dimLines(styles, background)
	return overlayCenter(dimmed, box, width, height)
}

func dimLines(styles *Styles, s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = styles.Dim.Render(stripANSI(line))
	}
	return strings.Join(lines, "\n")
}

// overlayCenter splices fg into the middle of bg. Lines covered by the
// popup are replaced whole; per-cell compositing is not worth the ANSI
// bookkeeping for a dimmed background.
func overlayCenter(bg, fg string, width, height int) string {
	bgLines := strings.Split(bg, "\n")
	for len(bgLines) < height {
		bgLines = append(bgLines, "")
	}

	fgLines := strings.Split(fg, "\n")
	top := (height - len(fgLines)) / 2
	if top < 0 {
		top = 0
	}

	for i, fl := range fgLines {
		row := top + i
		if row >= len(bgLines) {
			bgLines = append(bgLines, "")
			row = len(bgLines) - 1
		}
		bgLines[row] = lipgloss.PlaceHorizontal(width, lipgloss.Center, fl)
	}
	return strings.Join(bgLines, "\n")
}

// stripANSI removes escape sequences so re-styling the line doesn't nest
// conflicting colors
func stripANSI(s string) string {
	var b strings.Builder
	inEsc := false
	for _, r := range s {
		switch {
		case inEsc:
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
				inEsc = false
			}
		case r == '\x1b':
			inEsc = true
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
