package sorting

import (
	"log/slog"

	"reposcout/internal/domain"
	"reposcout/internal/eventbus"
	"reposcout/internal/stream"
	"reposcout/internal/ui/binding"
)

// Service holds the active sort of the result table
type Service struct {
	state *State
	sort  *stream.BehaviorSubject[domain.SortSpec]
	bus   eventbus.EventBus
}

// NewService creates a new sorting service, starting at the default sort
func NewService(bus eventbus.EventBus) *Service {
	return &Service{
		state: &State{Last: domain.DefaultSort()},
		sort:  stream.NewBehaviorSubject(domain.DefaultSort()),
		bus:   bus,
	}
}

// Current returns the active sort
func (s *Service) Current() domain.SortSpec {
	return s.sort.Value()
}

// ChangeSort applies a click on the column for field. Subscribers are
// notified before ChangeSort returns.
func (s *Service) ChangeSort(field domain.SortField) {
	old := s.sort.Value()
	next := old.Select(field)

	s.state.Changes++
	s.state.Last = next
	slog.Debug("sort changed", "from", old.String(), "to", next.String())

	s.sort.Next(next)
	s.bus.Publish(domain.SortChangedEvent{Old: old, New: next})
}

// Changes returns the sort stream; subscribers receive the current sort first
func (s *Service) Changes() stream.Observable[domain.SortSpec] {
	return s.sort.Observable()
}

// ChangesFor returns only the sorts on field
func (s *Service) ChangesFor(field domain.SortField) stream.Observable[domain.SortSpec] {
	return s.Changes().Filter(func(spec domain.SortSpec) bool {
		return spec.Field == field
	})
}

// Bind routes clicks on the two sort columns into ChangeSort
func (s *Service) Bind(stars, forks binding.ClickSource) *stream.Subscription {
	sub := &stream.Subscription{}
	sub.Add(stars.Clicks().Subscribe(func(struct{}) { s.ChangeSort(domain.SortStars) }).Unsubscribe)
	sub.Add(forks.Clicks().Subscribe(func(struct{}) { s.ChangeSort(domain.SortForks) }).Unsubscribe)
	return sub
}
