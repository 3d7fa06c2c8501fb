package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"reposcout/internal/eventbus"
	"reposcout/internal/stream"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// loopEventMsg carries a callback posted to the stream loop. It runs inside
// Update so stream callbacks and rendering share one goroutine.
type loopEventMsg struct {
	fn func()
}

// copiedMsg reports the outcome of a clipboard write
type copiedMsg struct {
	url string
	err error
}

// waitForLoop returns a command that delivers the next posted callback
func waitForLoop(loop *stream.Loop) tea.Cmd {
	return func() tea.Msg {
		select {
		case fn := <-loop.Events():
			return loopEventMsg{fn: fn}
		case <-loop.Done():
			return nil
		}
	}
}

// waitForEvent returns a command that delivers the next forwarded bus event
func waitForEvent(events <-chan eventbus.DomainEvent, done <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		select {
		case e := <-events:
			return EventMsg{Event: e}
		case <-done:
			return nil
		}
	}
}
