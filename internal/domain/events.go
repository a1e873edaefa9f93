package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventSearchIssued      EventType = "SearchIssued"
	EventSearchAccepted    EventType = "SearchAccepted"
	EventSearchFailed      EventType = "SearchFailed"
	EventResponseDiscarded EventType = "ResponseDiscarded"
	EventQueryCleared      EventType = "QueryCleared"
	EventConfigLoaded      EventType = "ConfigLoaded"
	EventConfigSaved       EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// SearchIssuedEvent is emitted when the controller dispatches a request
type SearchIssuedEvent struct {
	Request SearchRequest
}

func (e SearchIssuedEvent) Type() EventType { return EventSearchIssued }

// SearchAcceptedEvent is emitted when the latest request succeeded and updated the view
type SearchAcceptedEvent struct {
	Request     SearchRequest
	ResultCount int
	Pagination  *Pagination
}

func (e SearchAcceptedEvent) Type() EventType { return EventSearchAccepted }

// SearchFailedEvent is emitted when the latest request failed
type SearchFailedEvent struct {
	Request SearchRequest
	Err     error
}

func (e SearchFailedEvent) Type() EventType { return EventSearchFailed }

// ResponseDiscardedEvent is emitted when a superseded request resolves
type ResponseDiscardedEvent struct {
	Request   SearchRequest
	LatestSeq uint64
	Err       error // wraps ErrStaleResponse and the request's own failure, if any
}

func (e ResponseDiscardedEvent) Type() EventType { return EventResponseDiscarded }

// QueryClearedEvent is emitted when the query drops below the minimum length
type QueryClearedEvent struct {
	Query  string
	Reason error // wraps ErrQueryTooShort
}

func (e QueryClearedEvent) Type() EventType { return EventQueryCleared }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path     string
	Endpoint string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
