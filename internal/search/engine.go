// Package search implements the autocomplete query engine as an explicit
// state machine: a tagged State plus a pure Reduce over typed events.
// The surrounding UI owns timers and network effects; everything with an
// invariant lives here.
package search

import "net/url"

// Phase is the engine's lifecycle state
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseQuerying
	PhaseResultsReady
)

func (p Phase) String() string {
	switch p {
	case PhaseQuerying:
		return "querying"
	case PhaseResultsReady:
		return "ready"
	default:
		return "idle"
	}
}

// State is the full engine state. SelectedKey is a reference to a result
// (or the SeeAllKey sentinel), never an index, so it stays meaningful
// across result-set changes; "" means no selection.
//
// NextRequestID is the id of the most recently issued fetch and
// AppliedRequestID the id of the fetch whose results are displayed.
// Results apply only for the latest issued id, so a slow earlier request
// can never clobber a faster later one.
type State struct {
	Phase            Phase
	Query            string
	Groups           []Group
	SelectedKey      string
	Redirect         string
	NextRequestID    uint64
	AppliedRequestID uint64
}

// Event is a tagged input to Reduce
type Event interface {
	isEvent()
}

// QueryChanged carries the query string after a keystroke
type QueryChanged struct {
	Query string
}

// FetchIssued marks the moment the debounced fetch is actually dispatched
type FetchIssued struct{}

// ResultsArrived carries a provider response tagged with its request id
type ResultsArrived struct {
	RequestID uint64
	Raw       RawResults
}

// ArrowUp moves the selection cursor backwards
type ArrowUp struct{}

// ArrowDown moves the selection cursor forwards
type ArrowDown struct{}

// Submitted resolves the current selection or query into a redirect
type Submitted struct{}

func (QueryChanged) isEvent()   {}
func (FetchIssued) isEvent()    {}
func (ResultsArrived) isEvent() {}
func (ArrowUp) isEvent()        {}
func (ArrowDown) isEvent()      {}
func (Submitted) isEvent()      {}

// Reduce applies one event to the state. It is pure: timers, fetches and
// navigation are driven by the caller reading the returned state.
func Reduce(s State, ev Event) State {
	switch ev := ev.(type) {
	case QueryChanged:
		s.Query = ev.Query
		s.Redirect = ""
		if ev.Query == "" {
			s.Phase = PhaseIdle
			s.Groups = nil
			s.SelectedKey = ""
		} else {
			s.Phase = PhaseQuerying
		}

	case FetchIssued:
		if s.Query != "" {
			s.NextRequestID++
			s.Phase = PhaseQuerying
		}

	case ResultsArrived:
		// Drop stale responses: only the latest issued request may apply,
		// and never after the query was cleared back to idle
		if ev.RequestID != s.NextRequestID || ev.RequestID <= s.AppliedRequestID {
			return s
		}
		if s.Phase == PhaseIdle {
			return s
		}
		s.Groups = GroupResults(ev.Raw)
		s.SelectedKey = ""
		s.AppliedRequestID = ev.RequestID
		s.Phase = PhaseResultsReady

	case ArrowUp:
		s.SelectedKey = offsetSelection(s.Groups, s.SelectedKey, -1)

	case ArrowDown:
		s.SelectedKey = offsetSelection(s.Groups, s.SelectedKey, 1)

	case Submitted:
		s.Redirect = redirectFor(s)
	}
	return s
}

// offsetSelection moves the cursor across the flattened result sequence
// plus the virtual trailing see-all entry, wrapping at both ends. With no
// results the cursor stays where it is (never panics, stays null).
func offsetSelection(groups []Group, selected string, offset int) string {
	flat := Flatten(groups)
	if len(flat) == 0 {
		return selected
	}

	if selected == "" {
		if offset < 0 {
			return SeeAllKey
		}
		return flat[offset-1].Key
	}

	if selected == SeeAllKey {
		if offset < 0 {
			return flat[len(flat)+offset].Key
		}
		return flat[offset-1].Key
	}

	idx := -1
	for i, r := range flat {
		if r.Key == selected {
			idx = i
			break
		}
	}
	next := idx + offset
	if next < 0 || next >= len(flat) {
		return SeeAllKey
	}
	return flat[next].Key
}

// redirectFor resolves the submit destination: the selected result's
// canonical URL, the search page for a bare query, or nothing at all
func redirectFor(s State) string {
	if s.Query == "" {
		return ""
	}
	if s.SelectedKey == "" || s.SelectedKey == SeeAllKey {
		return SearchPageURL(s.Query)
	}
	for _, r := range Flatten(s.Groups) {
		if r.Key == s.SelectedKey {
			return r.URL
		}
	}
	return SearchPageURL(s.Query)
}

// SearchPageURL is the full search page for a query
func SearchPageURL(query string) string {
	return "/search?q=" + url.QueryEscape(query)
}

// SelectedResult returns the currently selected result, or nil when
// nothing or the virtual see-all entry is selected
func (s State) SelectedResult() *Result {
	if s.SelectedKey == "" || s.SelectedKey == SeeAllKey {
		return nil
	}
	for _, r := range Flatten(s.Groups) {
		if r.Key == s.SelectedKey {
			return &r
		}
	}
	return nil
}

// IsSelected reports whether a result is the current cursor target.
// Derived on demand; the selected flag is never stored on results.
func (s State) IsSelected(r Result) bool {
	return s.SelectedKey != "" && s.SelectedKey == r.Key
}

// SeeAllSelected reports whether the virtual see-all entry is selected
func (s State) SeeAllSelected() bool {
	return s.SelectedKey == SeeAllKey
}
