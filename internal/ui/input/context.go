package input

import (
	"reposcout/internal/ui/state"
)

// ModelContext implements the Context interface for the input handler
type ModelContext struct {
	State *state.AppState
}

// CurrentIndex returns the current selected index
func (c *ModelContext) CurrentIndex() int {
	return c.State.SelectedIndex
}

// TotalResults returns the number of results on the current page
func (c *ModelContext) TotalResults() int {
	return len(c.State.Results)
}

// HasSuggestions returns true if the suggestion list is showing
func (c *ModelContext) HasSuggestions() bool {
	return len(c.State.Suggestions) > 0
}

// Keyword returns the keyword as last typed
func (c *ModelContext) Keyword() string {
	return c.State.Keyword
}
