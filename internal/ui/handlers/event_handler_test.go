package handlers

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"reposcout/internal/domain"
	"reposcout/internal/ui/state"
)

func TestSearchCompletedSetsTotalAndStatus(t *testing.T) {
	s := state.NewAppState()
	h := NewEventHandler(s)

	cmd := h.HandleEvent(domain.SearchCompletedEvent{
		Query:      domain.NewQuery("react"),
		TotalCount: 420,
		Results:    10,
	})

	assert.NotNil(t, cmd)
	assert.Equal(t, 420, s.TotalCount)
	assert.Equal(t, `10 of 420 results for "react"`, s.StatusMessage)
}

func TestStatusMessages(t *testing.T) {
	tests := []struct {
		name  string
		event domain.DomainEvent
		want  string
	}{
		{"sort", domain.SortChangedEvent{Old: domain.DefaultSort(), New: domain.SortSpec{Field: domain.SortForks, Order: domain.OrderDesc}}, "Sorted by forks desc"},
		{"per page", domain.PerPageChangedEvent{PerPage: 50}, "Showing 50 per page"},
		{"error", domain.ErrorEvent{Message: "suggestions unavailable", Err: errors.New("boom")}, "Error: suggestions unavailable"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := state.NewAppState()
			NewEventHandler(s).HandleEvent(tt.event)
			assert.Equal(t, tt.want, s.StatusMessage)
		})
	}
}

func TestUnhandledEventIsIgnored(t *testing.T) {
	s := state.NewAppState()
	cmd := NewEventHandler(s).HandleEvent(domain.SearchRequestedEvent{Keyword: "go"})
	assert.Nil(t, cmd)
	assert.Empty(t, s.StatusMessage)
}

func TestClearStatusKeepsNewerMessage(t *testing.T) {
	s := state.NewAppState()
	h := NewEventHandler(s)

	h.HandleEvent(domain.PerPageChangedEvent{PerPage: 30})
	h.HandleEvent(domain.PerPageChangedEvent{PerPage: 50})

	h.ClearStatus(ClearStatusMsg{Message: "Showing 30 per page"})
	assert.Equal(t, "Showing 50 per page", s.StatusMessage)

	h.ClearStatus(ClearStatusMsg{Message: "Showing 50 per page"})
	assert.Empty(t, s.StatusMessage)
}
