package sorting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reposcout/internal/domain"
	"reposcout/internal/eventbus"
	"reposcout/internal/eventbus/eventbustest"
	"reposcout/internal/ui/binding"
)

func TestDefaultSortIsStarsDesc(t *testing.T) {
	svc := NewService(eventbus.NullBus{})

	var got []domain.SortSpec
	svc.Changes().Subscribe(func(s domain.SortSpec) { got = append(got, s) })
	assert.Equal(t, []domain.SortSpec{{Field: domain.SortStars, Order: domain.OrderDesc}}, got)
}

func TestChangeSortSequence(t *testing.T) {
	bus := eventbustest.New()
	svc := NewService(bus)

	var got []domain.SortSpec
	svc.Changes().Subscribe(func(s domain.SortSpec) { got = append(got, s) })

	svc.ChangeSort(domain.SortStars)
	svc.ChangeSort(domain.SortStars)
	svc.ChangeSort(domain.SortForks)
	svc.ChangeSort(domain.SortForks)

	assert.Equal(t, []domain.SortSpec{
		{Field: domain.SortStars, Order: domain.OrderDesc},
		{Field: domain.SortStars, Order: domain.OrderAsc},
		{Field: domain.SortStars, Order: domain.OrderDesc},
		{Field: domain.SortForks, Order: domain.OrderDesc},
		{Field: domain.SortForks, Order: domain.OrderAsc},
	}, got)

	events := bus.OfType(domain.EventSortChanged)
	require.Len(t, events, 4)
	assert.Equal(t, domain.SortChangedEvent{
		Old: domain.SortSpec{Field: domain.SortStars, Order: domain.OrderDesc},
		New: domain.SortSpec{Field: domain.SortForks, Order: domain.OrderDesc},
	}, events[2])
}

func TestChangesForFiltersByField(t *testing.T) {
	svc := NewService(eventbus.NullBus{})

	var stars, forks []domain.SortSpec
	svc.ChangesFor(domain.SortStars).Subscribe(func(s domain.SortSpec) { stars = append(stars, s) })
	svc.ChangesFor(domain.SortForks).Subscribe(func(s domain.SortSpec) { forks = append(forks, s) })

	svc.ChangeSort(domain.SortForks)
	assert.Len(t, stars, 1)
	assert.Equal(t, []domain.SortSpec{{Field: domain.SortForks, Order: domain.OrderDesc}}, forks)
}

func TestBindRoutesClicks(t *testing.T) {
	svc := NewService(eventbus.NullBus{})
	page := binding.NewPage([]int{10}, 10)
	sub := svc.Bind(page.SortStars, page.SortForks)

	page.SortStars.Click()
	assert.Equal(t, domain.SortSpec{Field: domain.SortStars, Order: domain.OrderAsc}, svc.Current())

	page.SortForks.Click()
	assert.Equal(t, domain.SortSpec{Field: domain.SortForks, Order: domain.OrderDesc}, svc.Current())

	sub.Unsubscribe()
	page.SortForks.Click()
	assert.Equal(t, domain.OrderDesc, svc.Current().Order)
}
