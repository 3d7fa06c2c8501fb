package coordinator

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reposcout/internal/domain"
	"reposcout/internal/eventbus/eventbustest"
	"reposcout/internal/stream"
	"reposcout/internal/ui/binding"
)

type apiError struct{ message string }

func (e *apiError) Error() string           { return "github: 422 " + e.message }
func (e *apiError) ResponseMessage() string { return e.message }

// fakeSource resolves every request by hand.
type fakeSource struct {
	queries     []domain.Query
	searches    []*stream.Subject[domain.ResultPage]
	suggestions map[string]*stream.Subject[[]domain.Suggestion]
}

func newFakeSource() *fakeSource {
	return &fakeSource{suggestions: map[string]*stream.Subject[[]domain.Suggestion]{}}
}

func (f *fakeSource) GetSuggestions(k string) stream.Observable[[]domain.Suggestion] {
	s := stream.NewSubject[[]domain.Suggestion]()
	f.suggestions[k] = s
	return s.Observable()
}

func (f *fakeSource) GetSearchResult(q domain.Query) stream.Observable[domain.ResultPage] {
	s := stream.NewSubject[domain.ResultPage]()
	f.queries = append(f.queries, q)
	f.searches = append(f.searches, s)
	return s.Observable()
}

func (f *fakeSource) resolve(i int, names ...string) {
	items := make([]domain.Repository, len(names))
	for j, n := range names {
		items[j] = domain.Repository{FullName: n}
	}
	f.searches[i].Next(domain.ResultPage{TotalCount: len(names), Items: items})
	f.searches[i].Complete()
}

// recordingRenderer logs every render call in order.
type recordingRenderer struct {
	calls []string
	repos []domain.Repository
}

func (r *recordingRenderer) FillAutoSuggestions(s []domain.Suggestion) {
	r.calls = append(r.calls, fmt.Sprintf("suggest:%d", len(s)))
}

func (r *recordingRenderer) FillSearchResult(repos []domain.Repository) {
	r.repos = repos
	r.calls = append(r.calls, fmt.Sprintf("fill:%d", len(repos)))
}

func (r *recordingRenderer) UpdateStarsSort(s domain.SortSpec) {
	r.calls = append(r.calls, "stars:"+string(s.Order))
}

func (r *recordingRenderer) UpdateForksSort(s domain.SortSpec) {
	r.calls = append(r.calls, "forks:"+string(s.Order))
}

func (r *recordingRenderer) UpdatePageNumber(p int) {
	r.calls = append(r.calls, fmt.Sprintf("page:%d", p))
}

func (r *recordingRenderer) Loading()         { r.calls = append(r.calls, "loading") }
func (r *recordingRenderer) Loaded()          { r.calls = append(r.calls, "loaded") }
func (r *recordingRenderer) Alert(msg string) { r.calls = append(r.calls, "alert:"+msg) }

func (r *recordingRenderer) reset() { r.calls = nil }

type fixture struct {
	page   *binding.Page
	source *fakeSource
	render *recordingRenderer
	sched  *stream.VirtualScheduler
	bus    *eventbustest.Recorder
	coord  *Coordinator
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		page:   binding.NewPage([]int{10, 30, 50, 100}, 10),
		source: newFakeSource(),
		render: &recordingRenderer{},
		sched:  stream.NewVirtualScheduler(),
		bus:    eventbustest.New(),
	}
	f.coord = NewCoordinator(f.page.Sources(), f.source, f.render, f.sched, f.bus, DefaultOptions())
	f.coord.Start()
	t.Cleanup(f.coord.Close)
	return f
}

func TestStartRendersInitialSortAndPage(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, []string{"stars:desc", "page:1"}, f.render.calls)
	assert.Empty(t, f.source.queries)
}

func TestNothingSearchedBeforeTrigger(t *testing.T) {
	f := newFixture(t)
	f.render.reset()

	f.page.SortForks.Click()
	f.page.NextPage.Click()
	f.page.PerPage.Choose("30")
	f.page.Keyword.Set("react")

	assert.Empty(t, f.source.queries)
	assert.NotContains(t, f.render.calls, "loading")
}

func TestSearchRunsFullQuery(t *testing.T) {
	f := newFixture(t)
	f.render.reset()

	f.page.Keyword.Set("react")
	f.page.Search.Click()

	require.Len(t, f.source.queries, 1)
	assert.Equal(t, domain.Query{
		Keyword: "react",
		Sort:    domain.SortStars,
		Order:   domain.OrderDesc,
		Page:    1,
		PerPage: 10,
	}, f.source.queries[0])
	assert.Equal(t, []string{"loading"}, f.render.calls)

	f.source.resolve(0, "facebook/react", "preactjs/preact")
	assert.Equal(t, []string{"loading", "fill:2", "loaded"}, f.render.calls)
	assert.Equal(t, "facebook/react", f.render.repos[0].FullName)
	assert.Len(t, f.bus.OfType(domain.EventSearchCompleted), 1)
}

func TestControlChangesReRunLastKeyword(t *testing.T) {
	f := newFixture(t)
	f.page.Keyword.Set("react")
	f.page.Search.Click()

	f.page.Keyword.Set("vue")
	f.page.SortForks.Click()
	f.page.NextPage.Click()
	f.page.PerPage.Choose("50")

	require.Len(t, f.source.queries, 4)
	assert.Equal(t, domain.Query{Keyword: "react", Sort: domain.SortForks, Order: domain.OrderDesc, Page: 1, PerPage: 10}, f.source.queries[1])
	assert.Equal(t, domain.Query{Keyword: "react", Sort: domain.SortForks, Order: domain.OrderDesc, Page: 2, PerPage: 10}, f.source.queries[2])
	assert.Equal(t, domain.Query{Keyword: "react", Sort: domain.SortForks, Order: domain.OrderDesc, Page: 2, PerPage: 50}, f.source.queries[3])
}

func TestOnlyLatestResultIsRendered(t *testing.T) {
	f := newFixture(t)
	f.page.Keyword.Set("react")
	f.page.Search.Click()
	f.page.NextPage.Click()
	f.render.reset()

	f.source.resolve(0, "stale/page-one")
	assert.Empty(t, f.render.calls)

	f.source.resolve(1, "fresh/page-two")
	assert.Equal(t, []string{"fill:1", "loaded"}, f.render.calls)
	assert.Equal(t, "fresh/page-two", f.render.repos[0].FullName)
}

func TestFailedSearchAlertsWithResponseMessage(t *testing.T) {
	f := newFixture(t)
	f.page.Keyword.Set("react")
	f.page.Search.Click()
	f.render.reset()

	f.source.searches[0].Error(fmt.Errorf("search: %w", &apiError{message: "Validation Failed"}))

	assert.Equal(t, []string{"fill:0", "loaded", "alert:Validation Failed"}, f.render.calls)
	assert.Empty(t, f.render.repos)
	assert.Len(t, f.bus.OfType(domain.EventSearchFailed), 1)

	f.render.reset()
	f.page.Search.Click()
	require.Len(t, f.source.queries, 2)
	f.source.searches[1].Error(errors.New("dial tcp: timeout"))
	assert.Equal(t, []string{"loading", "fill:0", "loaded", "alert:dial tcp: timeout"}, f.render.calls)
}

func TestSortChangesRenderPerColumn(t *testing.T) {
	f := newFixture(t)
	f.render.reset()

	f.page.SortStars.Click()
	f.page.SortForks.Click()
	f.page.SortForks.Click()

	assert.Equal(t, []string{"stars:asc", "forks:desc", "forks:asc"}, f.render.calls)
}

func TestPageNumberRendersEveryStep(t *testing.T) {
	f := newFixture(t)
	f.render.reset()

	f.page.PreviousPage.Click()
	f.page.NextPage.Click()
	f.page.NextPage.Click()

	assert.Equal(t, []string{"page:1", "page:2", "page:3"}, f.render.calls)
}

func TestSuggestionsRenderAfterDebounce(t *testing.T) {
	f := newFixture(t)
	f.render.reset()

	f.page.Keyword.Set("bubbletea")
	f.sched.Advance(time.Second)
	require.Contains(t, f.source.suggestions, "bubbletea")

	f.source.suggestions["bubbletea"].Next([]domain.Suggestion{{Text: "charmbracelet/bubbletea"}})
	assert.Equal(t, []string{"suggest:1"}, f.render.calls)
}

func TestStopReleasesSubscriptions(t *testing.T) {
	f := newFixture(t)
	f.page.Keyword.Set("react")
	f.page.Search.Click()
	f.coord.Stop()
	f.render.reset()

	f.source.resolve(0, "late/result")
	f.page.Search.Click()
	f.page.SortForks.Click()
	f.page.NextPage.Click()

	assert.Empty(t, f.render.calls)
	assert.Len(t, f.source.queries, 1)
}

func TestCoordinatorsAreIndependent(t *testing.T) {
	a := newFixture(t)
	b := newFixture(t)

	a.page.Keyword.Set("react")
	a.page.Search.Click()
	a.page.SortForks.Click()

	assert.Len(t, a.source.queries, 2)
	assert.Empty(t, b.source.queries)
	assert.Equal(t, domain.DefaultSort(), b.coord.Sorting.Current())
}

func TestNilBusDiscardsEvents(t *testing.T) {
	page := binding.NewPage([]int{10}, 10)
	source := newFakeSource()
	render := &recordingRenderer{}
	coord := NewCoordinator(page.Sources(), source, render, stream.NewVirtualScheduler(), nil, DefaultOptions())
	coord.Start()
	defer coord.Close()

	page.Keyword.Set("react")
	page.Search.Click()
	require.Len(t, source.queries, 1)

	assert.NotPanics(t, func() { source.resolve(0, "facebook/react") })
	assert.Contains(t, render.calls, "fill:1")
}
