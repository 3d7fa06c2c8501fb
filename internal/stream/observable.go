// Package stream provides push-based observables with the handful of
// operators the search page is composed from.
//
// Observables are cold until subscribed. Notifications for a subscription are
// expected to arrive on a single goroutine, normally the loop owned by a
// Scheduler, so operators keep their per-subscription state without locks.
package stream

import (
	"log/slog"
	"sync"
)

// Observer receives the notifications of one subscription. Nil callbacks are
// ignored, except Error, which is logged as unhandled.
type Observer[T any] struct {
	Next     func(T)
	Error    func(error)
	Complete func()
}

// Subscription releases the resources held by a subscribed observable.
type Subscription struct {
	mu       sync.Mutex
	closed   bool
	teardown []func()
}

// Add registers fn to run on Unsubscribe. If the subscription is already
// closed, fn runs immediately.
func (s *Subscription) Add(fn func()) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		fn()
		return
	}
	s.teardown = append(s.teardown, fn)
	s.mu.Unlock()
}

// Unsubscribe runs the registered teardowns in reverse order. It is safe to
// call more than once.
func (s *Subscription) Unsubscribe() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	fns := s.teardown
	s.teardown = nil
	s.mu.Unlock()

	for i := len(fns) - 1; i >= 0; i-- {
		fns[i]()
	}
}

// Closed reports whether Unsubscribe has run.
func (s *Subscription) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Observable is a lazily started sequence of values. The zero value never
// emits.
type Observable[T any] struct {
	subscribe func(Observer[T], *Subscription)
}

// Create builds an observable from a subscribe function. fn receives a
// guarded observer and the subscription it should attach teardowns to.
func Create[T any](fn func(o Observer[T], sub *Subscription)) Observable[T] {
	return Observable[T]{subscribe: fn}
}

// Subscribe starts the observable and delivers values to next.
func (o Observable[T]) Subscribe(next func(T)) *Subscription {
	return o.SubscribeWith(Observer[T]{Next: next})
}

// SubscribeWith starts the observable with a full observer.
func (o Observable[T]) SubscribeWith(obs Observer[T]) *Subscription {
	sub := &Subscription{}
	stopped := false
	guarded := Observer[T]{
		Next: func(v T) {
			if stopped || sub.Closed() {
				return
			}
			if obs.Next != nil {
				obs.Next(v)
			}
		},
		Error: func(err error) {
			if stopped || sub.Closed() {
				return
			}
			stopped = true
			if obs.Error != nil {
				obs.Error(err)
			} else {
				slog.Error("unhandled stream error", "err", err)
			}
			sub.Unsubscribe()
		},
		Complete: func() {
			if stopped || sub.Closed() {
				return
			}
			stopped = true
			if obs.Complete != nil {
				obs.Complete()
			}
			sub.Unsubscribe()
		},
	}
	if o.subscribe != nil {
		o.subscribe(guarded, sub)
	}
	return sub
}

// forward subscribes src with obs and ties the inner subscription to sub.
func forward[T any](src Observable[T], sub *Subscription, obs Observer[T]) {
	inner := src.SubscribeWith(obs)
	sub.Add(inner.Unsubscribe)
}
