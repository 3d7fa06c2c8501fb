package suggest

import (
	"fmt"
	"log/slog"
	"unicode/utf8"

	"reposcout/internal/domain"
	"reposcout/internal/eventbus"
	"reposcout/internal/stream"
)

// Fetcher looks up suggestions for a keyword
type Fetcher interface {
	GetSuggestions(keyword string) stream.Observable[[]domain.Suggestion]
}

// Service feeds autosuggestions from the keyword stream
type Service struct {
	state    *State
	keywords stream.Observable[string]
	fetcher  Fetcher
	sched    stream.Scheduler
	bus      eventbus.EventBus
	opts     Options
}

// NewService creates a new autosuggest service
func NewService(keywords stream.Observable[string], fetcher Fetcher, sched stream.Scheduler, bus eventbus.EventBus, opts Options) *Service {
	return &Service{
		state:    &State{},
		keywords: keywords,
		fetcher:  fetcher,
		sched:    sched,
		bus:      bus,
		opts:     opts,
	}
}

// Qualifies reports whether keyword is long enough to look up
func (s *Service) Qualifies(keyword string) bool {
	return utf8.RuneCountInString(keyword) > s.opts.MinLength
}

// Suggestions returns suggestions for the settled keyword. A lookup in
// flight is abandoned as soon as a newer keyword settles, and a failed
// lookup yields nothing without ending the stream.
func (s *Service) Suggestions() stream.Observable[[]domain.Suggestion] {
	settled := stream.DistinctUntilChanged(s.keywords.Debounce(s.sched, s.opts.Debounce)).
		Filter(s.Qualifies)

	return stream.SwitchMap(settled, func(keyword string) stream.Observable[[]domain.Suggestion] {
		s.state.Keyword = keyword
		return s.fetcher.GetSuggestions(keyword).
			CatchError(func(err error) stream.Observable[[]domain.Suggestion] {
				s.state.Failures++
				slog.Warn("suggestion lookup failed", "keyword", keyword, "err", err)
				s.bus.Publish(domain.ErrorEvent{
					Message: fmt.Sprintf("suggestions for %q unavailable", keyword),
					Err:     err,
				})
				return stream.Empty[[]domain.Suggestion]()
			})
	})
}

// Bind renders every suggestion list with render
func (s *Service) Bind(render func([]domain.Suggestion)) *stream.Subscription {
	return s.Suggestions().Subscribe(func(list []domain.Suggestion) {
		s.state.Suggestions = list
		render(list)
	})
}

// Last returns the keyword last looked up and the suggestions rendered for it
func (s *Service) Last() (string, []domain.Suggestion) {
	return s.state.Keyword, s.state.Suggestions
}

// Failures returns how many lookups failed
func (s *Service) Failures() int {
	return s.state.Failures
}
