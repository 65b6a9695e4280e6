package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"hubgrip/internal/api"
	"hubgrip/internal/domain"
	"hubgrip/internal/editor"
	"hubgrip/internal/eventbus"
	"hubgrip/internal/ui/views"
)

// popField is one editable line in the collection pop-over
type popField struct {
	label string
	field *editor.Field
}

// CollectionPop edits a collection's fields in place. Every field commits
// optimistically: the new value shows immediately and reverts with an
// inline error if the server rejects it.
type CollectionPop struct {
	ed     *editor.CollectionEditor
	fields []popField

	cursor  int
	editing bool
	input   textinput.Model

	currentUser *domain.User
	bus         eventbus.EventBus
	styles      *views.Styles
	log         *zap.Logger
}

// NewCollectionPop creates the editor pop-over for one collection
func NewCollectionPop(collection domain.Collection, svc *api.CollectionService, currentUser *domain.User, bus eventbus.EventBus, styles *views.Styles, log *zap.Logger) *CollectionPop {
	ed := editor.NewCollectionEditor(collection, svc)

	commit := func(fn func(ctx context.Context, value string) error) func(string) error {
		return func(value string) error {
			ctx, cancel := context.WithTimeout(context.Background(), searchFetchTimeout)
			defer cancel()
			return fn(ctx, value)
		}
	}

	input := textinput.New()
	input.Prompt = "> "
	input.CharLimit = 200

	if log == nil {
		log = zap.NewNop()
	}
	return &CollectionPop{
		ed: ed,
		fields: []popField{
			{label: "Name", field: editor.NewField(collection.Name, commit(ed.UpdateName))},
			{label: "Description", field: editor.NewField(collection.Description, commit(ed.UpdateDescription))},
			{label: "Color", field: editor.NewField(collection.Color, commit(ed.UpdateColor))},
		},
		input:       input,
		currentUser: currentUser,
		bus:         bus,
		styles:      styles,
		log:         log,
	}
}

// Editable reports whether the viewer may change anything here
func (p *CollectionPop) Editable() bool {
	return p.ed.UserIsAuthor(p.currentUser)
}

// Update implements PopoverContent
func (p *CollectionPop) Update(msg tea.Msg) (PopoverContent, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return p, p.handleKey(msg)

	case fieldCommittedMsg:
		p.resolveCommit(msg)
	}
	return p, nil
}

func (p *CollectionPop) handleKey(msg tea.KeyMsg) tea.Cmd {
	if p.editing {
		if msg.String() == "enter" {
			return p.commitEdit()
		}
		var cmd tea.Cmd
		p.input, cmd = p.input.Update(msg)
		return cmd
	}

	switch msg.String() {
	case "up":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down":
		if p.cursor < len(p.fields)-1 {
			p.cursor++
		}
	case "enter":
		if !p.Editable() {
			return nil
		}
		p.editing = true
		p.input.SetValue(p.fields[p.cursor].field.Display())
		p.input.CursorEnd()
		p.input.Focus()
	}
	return nil
}

func (p *CollectionPop) commitEdit() tea.Cmd {
	p.editing = false
	p.input.Blur()

	f := p.fields[p.cursor]
	value := p.input.Value()
	if value == f.field.Display() {
		return nil
	}

	// Change blocks on the network; run it as a command so the value shows
	// optimistically while the commit resolves
	return func() tea.Msg {
		applied, err := f.field.Change(value)
		return fieldCommittedMsg{field: f.label, applied: applied, err: err}
	}
}

func (p *CollectionPop) resolveCommit(msg fieldCommittedMsg) {
	for _, f := range p.fields {
		if f.label != msg.field {
			continue
		}
		if !msg.applied {
			// a newer edit superseded this commit; the field never
			// reverted, so there is nothing to announce
			return
		}
		if msg.err != nil {
			p.log.Warn("field commit rejected",
				zap.String("field", msg.field), zap.Error(msg.err))
			p.bus.Publish(eventbus.FieldRevertedEvent{
				Field:   msg.field,
				Value:   f.field.Display(),
				Message: f.field.Err(),
			})
			return
		}
		p.bus.Publish(eventbus.FieldCommittedEvent{Field: msg.field, Value: f.field.Display()})
		return
	}
}

// View implements PopoverContent
func (p *CollectionPop) View(width int) string {
	collection := p.ed.Collection()
	out := p.styles.Title.Render("Edit "+collection.Name) + "\n"

	if !p.Editable() {
		out += p.styles.Dim.Render("You don't own this collection") + "\n"
	}

	for i, f := range p.fields {
		marker := "  "
		if i == p.cursor && !p.editing {
			marker = "▸ "
		}

		line := marker + f.label + ": "
		if p.editing && i == p.cursor {
			line += p.input.View()
		} else {
			line += f.field.Display()
			if f.field.Pending() {
				line += " " + p.styles.StatusLoading.Render("(saving…)")
			}
		}
		if i == p.cursor && !p.editing {
			line = p.styles.SelectionBg.Render(line)
		}
		out += "\n" + line

		if errMsg := f.field.Err(); errMsg != "" {
			out += "\n    " + p.styles.StatusError.Render(errMsg)
		}
	}

	out += "\n\n" + p.styles.Dim.Render(fmt.Sprintf("%d project(s) in this collection", len(collection.Projects)))
	if p.Editable() {
		out += "\n" + p.styles.Help.Render("↑/↓ choose a field · enter to edit · esc to close")
	}
	return out
}
