package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	Dim           lipgloss.Style
	Status        lipgloss.Style
	Help          lipgloss.Style
	Main          lipgloss.Style
	GroupLabel    lipgloss.Style
	ResultTitle   lipgloss.Style
	ResultSub     lipgloss.Style
	SelectionBg   lipgloss.Style
	SeeAll        lipgloss.Style
	StatusError   lipgloss.Style
	StatusLoading lipgloss.Style
	StatusSuccess lipgloss.Style
	PopupBox      lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginBottom(1),
		Dim: lipgloss.NewStyle().Faint(true),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1),
		Help:        lipgloss.NewStyle().Faint(true),
		Main:        lipgloss.NewStyle().Padding(1, 2),
		GroupLabel:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
		ResultTitle: lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		ResultSub:   lipgloss.NewStyle().Faint(true),
		SelectionBg: lipgloss.NewStyle().Background(lipgloss.Color("238")).Bold(true),
		SeeAll:      lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("51")),
		StatusError: lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		StatusLoading: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		StatusSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("78")),
		PopupBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(1, 2).
			BorderForeground(lipgloss.Color("99")),
	}
}
