package handlers

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"reposcout/internal/domain"
	"reposcout/internal/eventbus"
	"reposcout/internal/ui/state"
)

// StatusTTL is how long an event's status message stays visible
const StatusTTL = 4 * time.Second

// ClearStatusMsg clears the status message it was scheduled for
type ClearStatusMsg struct {
	Message string
}

// EventHandler handles domain events and updates state
type EventHandler struct {
	state *state.AppState
}

// NewEventHandler creates a new event handler
func NewEventHandler(appState *state.AppState) *EventHandler {
	return &EventHandler{state: appState}
}

// Subscriptions lists the event types the handler consumes
func (h *EventHandler) Subscriptions() []eventbus.EventType {
	return []eventbus.EventType{
		domain.EventSearchCompleted,
		domain.EventSortChanged,
		domain.EventPerPageChanged,
		domain.EventError,
	}
}

// HandleEvent processes domain events and returns any necessary commands
func (h *EventHandler) HandleEvent(event eventbus.DomainEvent) tea.Cmd {
	switch e := event.(type) {
	case domain.SearchCompletedEvent:
		h.state.TotalCount = e.TotalCount
		h.state.StatusMessage = fmt.Sprintf("%d of %d results for %q", e.Results, e.TotalCount, e.Query.Keyword)

	case domain.SortChangedEvent:
		h.state.StatusMessage = fmt.Sprintf("Sorted by %s", e.New)

	case domain.PerPageChangedEvent:
		h.state.StatusMessage = fmt.Sprintf("Showing %d per page", e.PerPage)

	case domain.ErrorEvent:
		h.state.StatusMessage = fmt.Sprintf("Error: %s", e.Message)

	default:
		return nil
	}

	message := h.state.StatusMessage
	return tea.Tick(StatusTTL, func(time.Time) tea.Msg {
		return ClearStatusMsg{Message: message}
	})
}

// ClearStatus clears the status message unless a newer one replaced it
func (h *EventHandler) ClearStatus(msg ClearStatusMsg) {
	if h.state.StatusMessage == msg.Message {
		h.state.StatusMessage = ""
	}
}
