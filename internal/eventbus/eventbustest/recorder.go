// Package eventbustest provides a synchronous event bus for tests.
package eventbustest

import (
	"sync"

	"reposcout/internal/domain"
	"reposcout/internal/eventbus"
)

// Recorder keeps every published event in order. Subscribers are called
// synchronously from Publish.
type Recorder struct {
	mu       sync.Mutex
	events   []domain.DomainEvent
	handlers map[domain.EventType][]eventbus.EventHandler
}

func New() *Recorder {
	return &Recorder{handlers: make(map[domain.EventType][]eventbus.EventHandler)}
}

func (r *Recorder) Publish(event domain.DomainEvent) {
	r.mu.Lock()
	r.events = append(r.events, event)
	handlers := append([]eventbus.EventHandler(nil), r.handlers[event.Type()]...)
	r.mu.Unlock()
	for _, h := range handlers {
		h(event)
	}
}

func (r *Recorder) Subscribe(eventType domain.EventType, handler eventbus.EventHandler) func() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[eventType] = append(r.handlers[eventType], handler)
	return func() {}
}

// Events returns a copy of everything published so far.
func (r *Recorder) Events() []domain.DomainEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.DomainEvent(nil), r.events...)
}

// OfType returns the published events of type t.
func (r *Recorder) OfType(t domain.EventType) []domain.DomainEvent {
	var out []domain.DomainEvent
	for _, e := range r.Events() {
		if e.Type() == t {
			out = append(out, e)
		}
	}
	return out
}
