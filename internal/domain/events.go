package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventSearchRequested EventType = "SearchRequested"
	EventSearchCompleted EventType = "SearchCompleted"
	EventSearchFailed    EventType = "SearchFailed"
	EventSortChanged     EventType = "SortChanged"
	EventPerPageChanged  EventType = "PerPageChanged"
	EventError           EventType = "Error"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// SearchRequestedEvent is emitted when the search trigger resolves a keyword
type SearchRequestedEvent struct {
	Keyword string
}

func (e SearchRequestedEvent) Type() EventType { return EventSearchRequested }

// SearchCompletedEvent is emitted when a search fetch succeeds
type SearchCompletedEvent struct {
	Query      Query
	TotalCount int
	Results    int
}

func (e SearchCompletedEvent) Type() EventType { return EventSearchCompleted }

// SearchFailedEvent is emitted when a search fetch fails
type SearchFailedEvent struct {
	Query   Query
	Message string
}

func (e SearchFailedEvent) Type() EventType { return EventSearchFailed }

// SortChangedEvent is emitted when the sort state changes
type SortChangedEvent struct {
	Old SortSpec
	New SortSpec
}

func (e SortChangedEvent) Type() EventType { return EventSortChanged }

// PerPageChangedEvent is emitted when a valid page size is selected
type PerPageChangedEvent struct {
	PerPage int
}

func (e PerPageChangedEvent) Type() EventType { return EventPerPageChanged }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }
