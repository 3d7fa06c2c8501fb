package paging

import (
	"log/slog"
	"strconv"
	"strings"

	"reposcout/internal/domain"
	"reposcout/internal/eventbus"
	"reposcout/internal/stream"
	"reposcout/internal/ui/binding"
)

// Step folds one pagination step onto page, never going below the first page
func Step(page, step int) int {
	next := page + step
	if next < domain.FirstPage {
		return domain.FirstPage
	}
	return next
}

// ParsePerPage parses a per-page selection. Only positive numbers up to the
// API maximum are accepted.
func ParsePerPage(raw string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 || n > domain.MaxPerPage {
		return 0, false
	}
	return n, true
}

// Service derives the page number and page size from the pagination controls
type Service struct {
	state   *State
	pages   stream.Observable[int]
	perPage stream.Observable[int]
	sub     *stream.Subscription
	bus     eventbus.EventBus
}

// NewService creates a new paging service. The page starts at 1 and the page
// size at defaultPerPage.
func NewService(previous, next binding.ClickSource, sizes binding.SelectionSource, defaultPerPage int, bus eventbus.EventBus) *Service {
	s := &Service{
		state: &State{Page: domain.FirstPage, PerPage: defaultPerPage},
		bus:   bus,
		sub:   &stream.Subscription{},
	}

	steps := stream.Merge(
		stream.Map(previous.Clicks(), func(struct{}) int { return -1 }),
		stream.Map(next.Clicks(), func(struct{}) int { return 1 }),
	)
	s.pages = stream.Scan(steps, Step, domain.FirstPage).
		StartWith(domain.FirstPage).
		ShareReplayUntil(1, s.sub)

	valid := stream.Map(sizes.Selections(), func(raw string) int {
		n, ok := ParsePerPage(raw)
		if !ok {
			s.state.Dropped++
			slog.Warn("ignoring invalid per-page selection", "value", raw)
			return 0
		}
		return n
	}).Filter(func(n int) bool { return n > 0 })
	s.perPage = valid.
		Tap(func(n int) { s.bus.Publish(domain.PerPageChangedEvent{PerPage: n}) }).
		StartWith(defaultPerPage).
		ShareReplayUntil(1, s.sub)

	s.sub.Add(s.pages.Subscribe(func(p int) { s.state.Page = p }).Unsubscribe)
	s.sub.Add(s.perPage.Subscribe(func(n int) { s.state.PerPage = n }).Unsubscribe)
	return s
}

// Pages returns the page stream, seeded with 1
func (s *Service) Pages() stream.Observable[int] {
	return s.pages
}

// PerPage returns the page size stream, seeded with the default
func (s *Service) PerPage() stream.Observable[int] {
	return s.perPage
}

// Current returns the current page and page size
func (s *Service) Current() (page, perPage int) {
	return s.state.Page, s.state.PerPage
}

// Dropped returns how many per-page selections were rejected
func (s *Service) Dropped() int {
	return s.state.Dropped
}

// Close detaches from the controls and completes both streams
func (s *Service) Close() {
	s.sub.Unsubscribe()
}
