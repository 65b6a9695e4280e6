package ui

import (
	"hubgrip/internal/domain"
	"hubgrip/internal/eventbus"
	"hubgrip/internal/search"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// searchDebounceMsg fires when the search debounce window elapses
type searchDebounceMsg struct {
	version uint64
}

// searchResultsMsg carries a site search response tagged with its request id
type searchResultsMsg struct {
	requestID uint64
	raw       search.RawResults
	err       error
}

// inviteDebounceMsg fires when the invite search debounce window elapses
type inviteDebounceMsg struct {
	version uint64
}

// inviteResultsMsg carries ranked invite candidates tagged with request id
type inviteResultsMsg struct {
	requestID uint64
	users     []domain.User
	err       error
}

// domainCheckedMsg carries a freemail verdict for one email domain
type domainCheckedMsg struct {
	domain string
	valid  bool
}

// inviteDoneMsg reports the outcome of an invite call
type inviteDoneMsg struct {
	invitee string
	err     error
}

// whitelistDoneMsg reports the outcome of whitelisting a domain
type whitelistDoneMsg struct {
	domain string
	team   domain.Team
	err    error
}

// teamLoadedMsg carries the team fetched for the invite pop-over.
// apply is the loader generation that issued the fetch; it reports
// whether the result is still current.
type teamLoadedMsg struct {
	version uint64
	team    domain.Team
	invited []domain.User
	apply   func(domain.Team) bool
	err     error
}

// collectionLoadedMsg carries the collection fetched for the editor pop-over
type collectionLoadedMsg struct {
	version    uint64
	collection domain.Collection
	apply      func(domain.Collection) bool
	err        error
}

// fieldCommittedMsg reports an optimistic field commit resolving.
// applied is false when a newer edit superseded this commit, in which
// case the field state is untouched by it.
type fieldCommittedMsg struct {
	field   string
	applied bool
	err     error
}

// previewLoadedMsg carries readme content for the embedded project preview
type previewLoadedMsg struct {
	projectDomain string
	content       string
	err           error
}

// pagerClosedMsg is sent when the embedded pager exits
type pagerClosedMsg struct {
	err error
}

// redirectMsg asks the shell to navigate to a relative URL
type redirectMsg struct {
	url string
}

// currentUserMsg carries the signed-in user fetched at startup
type currentUserMsg struct {
	user domain.User
	err  error
}
