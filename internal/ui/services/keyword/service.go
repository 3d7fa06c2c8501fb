package keyword

import (
	"reposcout/internal/stream"
	"reposcout/internal/ui/binding"
)

// Service exposes the keyword input as a replaying stream. It holds a single
// connection to the input, so every consumer shares one listener and a late
// subscriber receives the current text immediately.
type Service struct {
	state    *State
	keywords stream.Observable[string]
	sub      *stream.Subscription
}

// NewService creates a new keyword service
func NewService(input binding.TextSource) *Service {
	s := &Service{state: &State{}, sub: &stream.Subscription{}}
	s.keywords = input.Changes().StartWith("").ShareReplayUntil(1, s.sub)
	s.sub.Add(s.keywords.Subscribe(func(k string) {
		if k != s.state.Current {
			s.state.Edits++
		}
		s.state.Current = k
	}).Unsubscribe)
	return s
}

// Keywords returns the keyword stream, seeded with ""
func (s *Service) Keywords() stream.Observable[string] {
	return s.keywords
}

// Current returns the last keyword
func (s *Service) Current() string {
	return s.state.Current
}

// Edits returns how many times the keyword changed
func (s *Service) Edits() int {
	return s.state.Edits
}

// Close detaches from the input and completes the keyword stream
func (s *Service) Close() {
	s.sub.Unsubscribe()
}
