package github

import (
	"context"

	"reposcout/internal/domain"
	"reposcout/internal/stream"
)

// Source exposes a Client as observables delivered on a scheduler
type Source struct {
	client *Client
	sched  stream.Scheduler
}

// NewSource creates a source over client
func NewSource(client *Client, sched stream.Scheduler) *Source {
	return &Source{client: client, sched: sched}
}

// GetSuggestions looks up suggestions for keyword
func (s *Source) GetSuggestions(keyword string) stream.Observable[[]domain.Suggestion] {
	return stream.FromAsync(s.sched, func(ctx context.Context) ([]domain.Suggestion, error) {
		return s.client.Suggestions(ctx, keyword)
	})
}

// GetSearchResult runs q
func (s *Source) GetSearchResult(q domain.Query) stream.Observable[domain.ResultPage] {
	return stream.FromAsync(s.sched, func(ctx context.Context) (domain.ResultPage, error) {
		return s.client.SearchRepositories(ctx, q)
	})
}
