package suggest

import (
	"time"

	"reposcout/internal/domain"
)

// Options tune the autosuggest pipeline
type Options struct {
	Debounce  time.Duration
	MinLength int // keywords must be longer than this, in runes
}

// DefaultOptions waits 700ms and requires at least four characters
func DefaultOptions() Options {
	return Options{Debounce: 700 * time.Millisecond, MinLength: 3}
}

// State holds autosuggest state
type State struct {
	Keyword     string
	Suggestions []domain.Suggestion
	Failures    int
}
