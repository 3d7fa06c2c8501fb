package results

import (
	"errors"

	"reposcout/internal/domain"
	"reposcout/internal/eventbus"
	"reposcout/internal/stream"
)

// Fetcher runs one search query
type Fetcher interface {
	GetSearchResult(q domain.Query) stream.Observable[domain.ResultPage]
}

// responseMessenger is implemented by errors that carry the API's own
// message payload.
type responseMessenger interface {
	ResponseMessage() string
}

// Message returns the user-facing text for a failed fetch: the API response
// message when there is one, the error text otherwise.
func Message(err error) string {
	var rm responseMessenger
	if errors.As(err, &rm) {
		if msg := rm.ResponseMessage(); msg != "" {
			return msg
		}
	}
	return err.Error()
}

// Service wraps search fetches into result envelopes
type Service struct {
	state   *State
	fetcher Fetcher
	bus     eventbus.EventBus
}

// NewService creates a new result service
func NewService(fetcher Fetcher, bus eventbus.EventBus) *Service {
	return &Service{state: &State{}, fetcher: fetcher, bus: bus}
}

// Fetch runs q and emits exactly one envelope, success or failure.
func (s *Service) Fetch(q domain.Query) stream.Observable[domain.ResultEnvelope] {
	ok := stream.Map(s.fetcher.GetSearchResult(q), func(page domain.ResultPage) domain.ResultEnvelope {
		return domain.Succeeded(q, page)
	})
	return ok.CatchError(func(err error) stream.Observable[domain.ResultEnvelope] {
		return stream.Of(domain.Failed(q, Message(err)))
	})
}

// Envelopes fetches every query, abandoning the previous fetch when a new
// query arrives. The returned stream is shared among its subscribers.
func (s *Service) Envelopes(queries stream.Observable[domain.Query]) stream.Observable[domain.ResultEnvelope] {
	return stream.SwitchMap(queries, s.Fetch).Tap(s.record).Share()
}

func (s *Service) record(env domain.ResultEnvelope) {
	s.state.Last = env
	if env.Success {
		s.state.Succeeded++
		s.bus.Publish(domain.SearchCompletedEvent{
			Query:      env.Query,
			TotalCount: env.TotalCount,
			Results:    len(env.Data),
		})
		return
	}
	s.state.Failed++
	s.bus.Publish(domain.SearchFailedEvent{Query: env.Query, Message: env.Message})
}

// Last returns the most recent envelope
func (s *Service) Last() domain.ResultEnvelope {
	return s.state.Last
}

// Counts returns how many fetches succeeded and failed
func (s *Service) Counts() (succeeded, failed int) {
	return s.state.Succeeded, s.state.Failed
}
