package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// PopoverContent is what a popover hosts: a focused component that
// renders itself and consumes keys while the popover is open. The shell
// carries no business logic of its own.
type PopoverContent interface {
	Update(msg tea.Msg) (PopoverContent, tea.Cmd)
	View(width int) string
}

// Popover is the generic disclosure container: open/closed state, escape
// to close, and an optional onOpen hook
type Popover struct {
	visible bool
	content PopoverContent
	onOpen  func()
	log     *zap.Logger
}

// NewPopover creates a closed popover
func NewPopover(log *zap.Logger) *Popover {
	if log == nil {
		log = zap.NewNop()
	}
	return &Popover{log: log}
}

// SetOnOpen registers a hook that runs each time the popover opens
func (p *Popover) SetOnOpen(fn func()) {
	p.onOpen = fn
}

// Visible reports whether the popover is open
func (p *Popover) Visible() bool {
	return p.visible
}

// Content returns the hosted component, or nil when closed
func (p *Popover) Content() PopoverContent {
	return p.content
}

// Open shows the popover with the given content
func (p *Popover) Open(content PopoverContent) {
	if content == nil {
		// mirror of the old "unsupported top-level render shape" warning:
		// log and stay closed rather than blow up the UI
		p.log.Warn("popover opened with no content")
		return
	}
	if !p.visible && p.onOpen != nil {
		p.onOpen()
	}
	p.visible = true
	p.content = content
}

// Close hides the popover
func (p *Popover) Close() {
	p.visible = false
	p.content = nil
}

// Toggle flips visibility
func (p *Popover) Toggle(content PopoverContent) {
	if p.visible {
		p.Close()
		return
	}
	p.Open(content)
}

// Update routes messages to the hosted content. Escape closes the
// popover and swallows the key.
func (p *Popover) Update(msg tea.Msg) tea.Cmd {
	if !p.visible {
		return nil
	}

	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		p.Close()
		return nil
	}

	if p.content == nil {
		return nil
	}
	content, cmd := p.content.Update(msg)
	p.content = content
	return cmd
}

// View renders the hosted content
func (p *Popover) View(width int) string {
	if !p.visible || p.content == nil {
		return ""
	}
	return p.content.View(width)
}
