package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"hubgrip/internal/api"
	"hubgrip/internal/eventbus"
	"hubgrip/internal/search"
	"hubgrip/internal/ui/adapters"
	"hubgrip/internal/ui/views"
)

// searchDebounce is how long typing must pause before a fetch is issued
const searchDebounce = 300 * time.Millisecond

const searchFetchTimeout = 10 * time.Second

// SearchForm is the autocomplete search input: a text field in front of
// the query engine. It owns the debounce timer and the fetch effect; all
// ordering rules live in the engine's reducer.
type SearchForm struct {
	input   textinput.Model
	st      search.State
	version uint64 // invalidates pending debounce timers
	failed  bool   // the latest fetch errored; cleared on the next keystroke

	// enhanced gates the remote autocomplete; when off the form is a
	// plain input that only navigates to the search page on submit
	enhanced bool

	client *api.Client
	bus    eventbus.EventBus
	styles *views.Styles
	log    *zap.Logger
	width  int
}

// NewSearchForm creates the search form
func NewSearchForm(client *api.Client, bus eventbus.EventBus, styles *views.Styles, log *zap.Logger, enhanced bool) *SearchForm {
	input := textinput.New()
	input.Placeholder = "Search for projects, teams, and users"
	input.Prompt = "🔍 "
	input.CharLimit = 200
	input.Focus()

	if log == nil {
		log = zap.NewNop()
	}
	return &SearchForm{
		input:    input,
		enhanced: enhanced,
		client:   client,
		bus:      bus,
		styles:   styles,
		log:      log,
		width:    80,
	}
}

// SetEnhanced flips the autocomplete mode at runtime (driven by the
// enhanced-search toggle)
func (f *SearchForm) SetEnhanced(on bool) {
	f.enhanced = on
	if !on {
		f.clearResults()
	}
}

// SetQuery prefills the input (restoring the last session's query)
// without engaging the engine; nothing fetches until the user types
func (f *SearchForm) SetQuery(q string) {
	f.input.SetValue(q)
	f.input.CursorEnd()
}

// Query returns the raw input text, which in legacy mode is the only
// place the query lives
func (f *SearchForm) Query() string {
	return f.input.Value()
}

// SetWidth resizes the form
func (f *SearchForm) SetWidth(w int) {
	f.width = w
	f.input.Width = w - 6
}

// State exposes the engine state for the shell (redirect handling)
func (f *SearchForm) State() search.State {
	return f.st
}

// Focus focuses the text input
func (f *SearchForm) Focus() {
	f.input.Focus()
}

// Blur removes focus from the text input
func (f *SearchForm) Blur() {
	f.input.Blur()
}

// Update handles one message. Returned commands carry debounce timers,
// fetches and redirects.
func (f *SearchForm) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up":
			f.st = search.Reduce(f.st, search.ArrowUp{})
			return nil
		case "down":
			f.st = search.Reduce(f.st, search.ArrowDown{})
			return nil
		case "enter":
			return f.submit()
		default:
			return f.handleTyping(msg)
		}

	case searchDebounceMsg:
		return f.debounceElapsed(msg)

	case searchResultsMsg:
		f.applyResults(msg)
		return nil
	}
	return nil
}

func (f *SearchForm) handleTyping(msg tea.KeyMsg) tea.Cmd {
	before := f.input.Value()
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	after := f.input.Value()
	if after == before {
		return cmd
	}

	// Legacy mode is a plain input: no engine, no fetches, submit only
	if !f.enhanced {
		return cmd
	}

	f.st = search.Reduce(f.st, search.QueryChanged{Query: after})
	f.version++
	f.failed = false

	if after == "" {
		f.bus.Publish(eventbus.SearchClearedEvent{})
		return cmd
	}

	v := f.version
	return tea.Batch(cmd, tea.Tick(searchDebounce, func(time.Time) tea.Msg {
		return searchDebounceMsg{version: v}
	}))
}

func (f *SearchForm) debounceElapsed(msg searchDebounceMsg) tea.Cmd {
	// A newer keystroke already superseded this timer
	if msg.version != f.version || f.st.Query == "" {
		return nil
	}

	f.st = search.Reduce(f.st, search.FetchIssued{})
	requestID := f.st.NextRequestID
	query := f.st.Query

	f.bus.Publish(eventbus.SearchStartedEvent{Query: query, RequestID: requestID})

	client := f.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), searchFetchTimeout)
		defer cancel()

		resp, err := client.SiteSearch(ctx, query)
		if err != nil {
			return searchResultsMsg{requestID: requestID, err: err}
		}
		return searchResultsMsg{requestID: requestID, raw: adapters.RawFromSite(resp)}
	}
}

func (f *SearchForm) applyResults(msg searchResultsMsg) {
	if msg.err != nil {
		f.log.Warn("site search failed", zap.Error(msg.err))
		// Only a failure of the latest outstanding fetch surfaces;
		// superseded and post-clear failures are dropped like results
		if msg.requestID == f.st.NextRequestID &&
			msg.requestID > f.st.AppliedRequestID &&
			f.st.Phase == search.PhaseQuerying {
			f.failed = true
		}
		return
	}

	before := f.st.AppliedRequestID
	f.st = search.Reduce(f.st, search.ResultsArrived{RequestID: msg.requestID, Raw: msg.raw})
	if f.st.AppliedRequestID == before {
		return // stale response, dropped by the reducer
	}
	f.failed = false

	f.bus.Publish(eventbus.SearchCompletedEvent{
		Query:       f.st.Query,
		RequestID:   msg.requestID,
		ResultCount: len(search.Flatten(f.st.Groups)),
	})
}

func (f *SearchForm) submit() tea.Cmd {
	var dest string
	if f.enhanced {
		f.st = search.Reduce(f.st, search.Submitted{})
		dest = f.st.Redirect
	} else if query := f.input.Value(); query != "" {
		dest = search.SearchPageURL(query)
	}
	if dest == "" {
		return nil
	}

	f.bus.Publish(eventbus.RedirectEvent{URL: dest})
	return func() tea.Msg {
		return redirectMsg{url: dest}
	}
}

func (f *SearchForm) clearResults() {
	f.version++
	f.failed = false
	f.st = search.Reduce(f.st, search.QueryChanged{Query: f.input.Value()})
	f.st.Groups = nil
	f.st.SelectedKey = ""
	f.st.Phase = search.PhaseIdle
}

// View renders the input, status line and result dropdown
func (f *SearchForm) View(showCounts bool) string {
	var out string
	out = f.input.View()

	if f.failed {
		out += "\n" + f.styles.StatusError.Render("Search failed")
	} else if status := views.RenderStatus(f.styles, f.st); status != "" {
		out += "\n" + status
	}
	if f.st.Phase == search.PhaseResultsReady && len(f.st.Groups) > 0 {
		out += "\n\n" + views.RenderGroups(f.styles, f.st, f.width-4, showCounts)
	}
	return out
}
