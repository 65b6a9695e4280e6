package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"hubgrip/internal/prefs"
	"hubgrip/internal/ui/views"
)

// TogglesPop is the dev toggle screen: flip in-development features on
// and off. Changes persist immediately through the prefs store, which
// notifies the rest of the app.
type TogglesPop struct {
	store  *prefs.Store
	names  []string
	labels map[string]string
	cursor int
	styles *views.Styles
	log    *zap.Logger
}

// NewTogglesPop creates the dev toggle screen
func NewTogglesPop(store *prefs.Store, styles *views.Styles, log *zap.Logger) *TogglesPop {
	if log == nil {
		log = zap.NewNop()
	}
	return &TogglesPop{
		store: store,
		names: []string{
			prefs.ToggleEnhancedSearch,
			prefs.ToggleEmailInvites,
			prefs.ToggleShowNewStuff,
		},
		labels: map[string]string{
			prefs.ToggleEnhancedSearch: "Enhanced search (live grouped results)",
			prefs.ToggleEmailInvites:   "Invite teammates by email",
			prefs.ToggleShowNewStuff:   "Show the new stuff notice",
		},
		styles: styles,
		log:    log,
	}
}

// Update implements PopoverContent
func (p *TogglesPop) Update(msg tea.Msg) (PopoverContent, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}

	switch key.String() {
	case "up":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down":
		if p.cursor < len(p.names)-1 {
			p.cursor++
		}
	case "enter", " ":
		name := p.names[p.cursor]
		next := !p.store.ToggleEnabled(name)
		if err := p.store.SetToggle(name, next); err != nil {
			p.log.Warn("could not persist toggle",
				zap.String("toggle", name), zap.Error(err))
		}
	}
	return p, nil
}

// View implements PopoverContent
func (p *TogglesPop) View(width int) string {
	out := p.styles.Title.Render("Dev toggles") + "\n"
	out += p.styles.Dim.Render("Features under development. Flip at your own risk.") + "\n"

	for i, name := range p.names {
		mark := "[ ]"
		if p.store.ToggleEnabled(name) {
			mark = "[x]"
		}
		line := mark + " " + p.labels[name]
		if i == p.cursor {
			line = p.styles.SelectionBg.Render("▸ " + line)
		} else {
			line = "  " + line
		}
		out += "\n" + line
	}

	out += "\n\n" + p.styles.Help.Render("enter to flip · esc to close")
	return out
}
