package coordinator

import (
	"log/slog"

	"reposcout/internal/domain"
	"reposcout/internal/eventbus"
	"reposcout/internal/stream"
	"reposcout/internal/ui/binding"
	"reposcout/internal/ui/services/keyword"
	"reposcout/internal/ui/services/paging"
	"reposcout/internal/ui/services/results"
	"reposcout/internal/ui/services/search"
	"reposcout/internal/ui/services/sorting"
	"reposcout/internal/ui/services/suggest"
)

// Renderer draws the search page
type Renderer interface {
	FillAutoSuggestions(suggestions []domain.Suggestion)
	FillSearchResult(repos []domain.Repository)
	UpdateStarsSort(sort domain.SortSpec)
	UpdateForksSort(sort domain.SortSpec)
	UpdatePageNumber(page int)
	Loading()
	Loaded()
	Alert(message string)
}

// DataSource supplies suggestions and search results
type DataSource interface {
	suggest.Fetcher
	results.Fetcher
}

// Options configure a coordinator
type Options struct {
	Suggest        suggest.Options
	DefaultPerPage int
}

// DefaultOptions returns the standard pipeline settings
func DefaultOptions() Options {
	return Options{Suggest: suggest.DefaultOptions(), DefaultPerPage: domain.DefaultPerPage}
}

// Coordinator wires the page's event sources through the services into a
// renderer. Each coordinator owns its services and subscriptions, so several
// can run side by side.
type Coordinator struct {
	// Services
	Keyword *keyword.Service
	Suggest *suggest.Service
	Sorting *sorting.Service
	Paging  *paging.Service
	Search  *search.Service
	Results *results.Service

	// Dependencies
	sources binding.Sources
	render  Renderer
	bus     eventbus.EventBus

	queries stream.Observable[domain.Query]
	subs    *stream.Subscription
}

// NewCoordinator creates a new coordinator with all services. A nil bus
// discards events.
func NewCoordinator(sources binding.Sources, data DataSource, render Renderer, sched stream.Scheduler, bus eventbus.EventBus, opts Options) *Coordinator {
	if bus == nil {
		bus = eventbus.NullBus{}
	}
	if opts.DefaultPerPage <= 0 {
		opts.DefaultPerPage = domain.DefaultPerPage
	}

	kw := keyword.NewService(sources.Keyword)
	c := &Coordinator{
		Keyword: kw,
		Suggest: suggest.NewService(kw.Keywords(), data, sched, bus, opts.Suggest),
		Sorting: sorting.NewService(bus),
		Paging:  paging.NewService(sources.PreviousPage, sources.NextPage, sources.PerPage, opts.DefaultPerPage, bus),
		Search:  search.NewService(sources.Search, kw.Keywords(), bus),
		Results: results.NewService(data, bus),
		sources: sources,
		render:  render,
		bus:     bus,
	}

	c.queries = stream.CombineLatest4(
		c.Search.Requests(),
		c.Sorting.Changes(),
		c.Paging.Pages(),
		c.Paging.PerPage(),
		func(k string, sort domain.SortSpec, page, perPage int) domain.Query {
			return domain.NewSortedQuery(k, sort, page, perPage)
		},
	).Share()

	return c
}

// Queries returns the stream of search queries. Nothing is emitted before
// the first search request; afterwards every sort, page or page size change
// re-runs the last keyword.
func (c *Coordinator) Queries() stream.Observable[domain.Query] {
	return c.queries
}

// Start subscribes the renderer. The loading indicator is raised for a
// query before its fetch starts.
func (c *Coordinator) Start() {
	if c.subs != nil && !c.subs.Closed() {
		return
	}
	subs := &stream.Subscription{}
	c.subs = subs

	subs.Add(c.Suggest.Bind(c.render.FillAutoSuggestions).Unsubscribe)

	subs.Add(c.Sorting.Bind(c.sources.SortStars, c.sources.SortForks).Unsubscribe)
	subs.Add(c.Sorting.ChangesFor(domain.SortStars).Subscribe(c.render.UpdateStarsSort).Unsubscribe)
	subs.Add(c.Sorting.ChangesFor(domain.SortForks).Subscribe(c.render.UpdateForksSort).Unsubscribe)

	subs.Add(c.Paging.Pages().Subscribe(c.render.UpdatePageNumber).Unsubscribe)

	subs.Add(c.queries.Subscribe(func(q domain.Query) {
		slog.Info("searching", "keyword", q.Keyword, "sort", q.Sort, "order", q.Order, "page", q.Page, "per_page", q.PerPage)
		c.render.Loading()
	}).Unsubscribe)

	envelopes := c.Results.Envelopes(c.queries)
	subs.Add(envelopes.Subscribe(func(env domain.ResultEnvelope) {
		c.render.FillSearchResult(env.Data)
		c.render.Loaded()
	}).Unsubscribe)
	subs.Add(envelopes.Filter(failed).Subscribe(func(env domain.ResultEnvelope) {
		slog.Warn("search failed", "keyword", env.Query.Keyword, "message", env.Message)
		c.render.Alert(env.Message)
	}).Unsubscribe)
}

// Stop releases every subscription made by Start
func (c *Coordinator) Stop() {
	if c.subs != nil {
		c.subs.Unsubscribe()
	}
}

// Close stops the coordinator and detaches its services from the page
// controls
func (c *Coordinator) Close() {
	c.Stop()
	c.Keyword.Close()
	c.Paging.Close()
}

func failed(env domain.ResultEnvelope) bool {
	return !env.Success
}
