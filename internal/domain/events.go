package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventSearchStarted   EventType = "SearchStarted"
	EventSearchCompleted EventType = "SearchCompleted"
	EventSearchCleared   EventType = "SearchCleared"
	EventInviteSent      EventType = "InviteSent"
	EventInviteFailed    EventType = "InviteFailed"
	EventDomainWhitelisted EventType = "DomainWhitelisted"
	EventFieldCommitted  EventType = "FieldCommitted"
	EventFieldReverted   EventType = "FieldReverted"
	EventRedirect        EventType = "Redirect"
	EventPrefChanged     EventType = "PrefChanged"
	EventConfigLoaded    EventType = "ConfigLoaded"
	EventConfigSaved     EventType = "ConfigSaved"
	EventError           EventType = "Error"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// SearchStartedEvent is emitted when a remote search is dispatched
type SearchStartedEvent struct {
	Query     string
	RequestID uint64
}

func (e SearchStartedEvent) Type() EventType { return EventSearchStarted }

// SearchCompletedEvent is emitted when a search response is applied
type SearchCompletedEvent struct {
	Query      string
	RequestID  uint64
	ResultCount int
}

func (e SearchCompletedEvent) Type() EventType { return EventSearchCompleted }

// SearchClearedEvent is emitted when the query is emptied
type SearchClearedEvent struct{}

func (e SearchClearedEvent) Type() EventType { return EventSearchCleared }

// InviteSentEvent is emitted when a team invite succeeds
type InviteSentEvent struct {
	TeamID  int
	Invitee string // display name or email address
}

func (e InviteSentEvent) Type() EventType { return EventInviteSent }

// InviteFailedEvent is emitted when a team invite is rolled back
type InviteFailedEvent struct {
	TeamID  int
	Invitee string
	Err     error
}

func (e InviteFailedEvent) Type() EventType { return EventInviteFailed }

// DomainWhitelistedEvent is emitted when a team whitelists an email domain
type DomainWhitelistedEvent struct {
	TeamID int
	Domain string
}

func (e DomainWhitelistedEvent) Type() EventType { return EventDomainWhitelisted }

// FieldCommittedEvent is emitted when an optimistic field commit is confirmed
type FieldCommittedEvent struct {
	Field string
	Value string
}

func (e FieldCommittedEvent) Type() EventType { return EventFieldCommitted }

// FieldRevertedEvent is emitted when an optimistic field commit is rejected
type FieldRevertedEvent struct {
	Field   string
	Value   string
	Message string
}

func (e FieldRevertedEvent) Type() EventType { return EventFieldReverted }

// RedirectEvent is emitted when submit resolves to a destination URL
type RedirectEvent struct {
	URL string
}

func (e RedirectEvent) Type() EventType { return EventRedirect }

// PrefChangedEvent is emitted when a local preference changes
type PrefChangedEvent struct {
	Key string
}

func (e PrefChangedEvent) Type() EventType { return EventPrefChanged }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	APIBaseURL string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct{}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }

// ErrorEvent is emitted for unexpected errors worth reporting upstream
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }
