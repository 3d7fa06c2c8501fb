package search

import (
	"log/slog"
	"strings"

	"reposcout/internal/domain"
	"reposcout/internal/eventbus"
	"reposcout/internal/stream"
	"reposcout/internal/ui/binding"
)

// HasKeyword reports whether k is worth searching for
func HasKeyword(k string) bool {
	return strings.TrimSpace(k) != ""
}

// Service turns search clicks into keyword requests
type Service struct {
	state    *State
	requests stream.Observable[string]
	bus      eventbus.EventBus
}

// NewService creates a new search service. Every click samples exactly one
// value from keywords, so keywords must replay its current value.
func NewService(button binding.ClickSource, keywords stream.Observable[string], bus eventbus.EventBus) *Service {
	s := &Service{state: &State{}, bus: bus}

	sampled := stream.SwitchMap(button.Clicks(), func(struct{}) stream.Observable[string] {
		return keywords.Take(1)
	})
	s.requests = sampled.
		Filter(func(k string) bool {
			if !HasKeyword(k) {
				s.state.Ignored++
				slog.Debug("search clicked without keyword")
				return false
			}
			return true
		}).
		Tap(func(k string) {
			s.state.LastKeyword = k
			s.state.Requests++
			s.bus.Publish(domain.SearchRequestedEvent{Keyword: k})
		}).
		Share()
	return s
}

// Requests returns the stream of searched keywords
func (s *Service) Requests() stream.Observable[string] {
	return s.requests
}

// LastKeyword returns the most recently requested keyword
func (s *Service) LastKeyword() string {
	return s.state.LastKeyword
}

// Stats returns how many clicks produced a request and how many were ignored
func (s *Service) Stats() (requests, ignored int) {
	return s.state.Requests, s.state.Ignored
}
