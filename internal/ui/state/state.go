package state

import (
	"reposcout/internal/domain"
)

// AppState contains all the application state
type AppState struct {
	// Keyword line
	Keyword         string
	Suggestions     []domain.Suggestion
	SuggestionIndex int // -1 when no suggestion is highlighted

	// Result data
	Results     []domain.Repository
	TotalCount  int
	HasSearched bool

	// Search controls as last rendered
	Sort    domain.SortSpec
	Page    int
	PerPage string

	// Selection state
	SelectedIndex int

	// UI state
	ViewportOffset int
	ViewportHeight int
	Loading        bool
	Alert          string // modal message, blocks input until dismissed
	StatusMessage  string
}

// NewAppState creates a new application state
func NewAppState() *AppState {
	return &AppState{
		SuggestionIndex: -1,
		Sort:            domain.DefaultSort(),
		Page:            domain.FirstPage,
		ViewportHeight:  20, // Default
	}
}

// SetResults replaces the result list and moves the cursor to the top
func (s *AppState) SetResults(repos []domain.Repository) {
	s.Results = repos
	s.HasSearched = true
	s.SelectedIndex = 0
	s.ViewportOffset = 0
}

// SelectedRepository returns the repository under the cursor
func (s *AppState) SelectedRepository() (domain.Repository, bool) {
	if s.SelectedIndex < 0 || s.SelectedIndex >= len(s.Results) {
		return domain.Repository{}, false
	}
	return s.Results[s.SelectedIndex], true
}

// SetSuggestions replaces the suggestion list and clears the highlight
func (s *AppState) SetSuggestions(suggestions []domain.Suggestion) {
	s.Suggestions = suggestions
	s.SuggestionIndex = -1
}

// ClearSuggestions hides the suggestion list
func (s *AppState) ClearSuggestions() {
	s.SetSuggestions(nil)
}

// MoveSuggestion moves the highlight by delta, wrapping around the list.
// Moving up from the first entry removes the highlight.
func (s *AppState) MoveSuggestion(delta int) {
	n := len(s.Suggestions)
	if n == 0 {
		s.SuggestionIndex = -1
		return
	}
	next := s.SuggestionIndex + delta
	switch {
	case next < -1:
		next = n - 1
	case next >= n:
		next = -1
	}
	s.SuggestionIndex = next
}

// HighlightedSuggestion returns the highlighted suggestion, or the first one
// when nothing is highlighted
func (s *AppState) HighlightedSuggestion() (domain.Suggestion, bool) {
	if len(s.Suggestions) == 0 {
		return domain.Suggestion{}, false
	}
	if s.SuggestionIndex < 0 || s.SuggestionIndex >= len(s.Suggestions) {
		return s.Suggestions[0], true
	}
	return s.Suggestions[s.SuggestionIndex], true
}

// ShowAlert raises a modal message. An empty message is ignored.
func (s *AppState) ShowAlert(message string) {
	if message == "" {
		return
	}
	s.Alert = message
}

// DismissAlert closes the modal message
func (s *AppState) DismissAlert() {
	s.Alert = ""
}
