package types

import "reposcout/internal/domain"

// Navigation actions
type NavigateAction struct {
	Direction string // "up", "down", "pageup", "pagedown", "home", "end"
}

func (a NavigateAction) Type() string { return "navigate" }

// Mode transition actions
type ChangeModeAction struct {
	Mode Mode
}

func (a ChangeModeAction) Type() string { return "change_mode" }

// Text input actions
type UpdateTextAction struct {
	Text string
}

func (a UpdateTextAction) Type() string { return "update_text" }

type SubmitTextAction struct {
	Text string
}

func (a SubmitTextAction) Type() string { return "submit_text" }

type CancelTextAction struct{}

func (a CancelTextAction) Type() string { return "cancel_text" }

// Search page controls
type SearchAction struct{}

func (a SearchAction) Type() string { return "search" }

type SortAction struct {
	Field domain.SortField
}

func (a SortAction) Type() string { return "sort" }

type PageAction struct {
	Step int // -1 previous, +1 next
}

func (a PageAction) Type() string { return "page" }

type CyclePerPageAction struct{}

func (a CyclePerPageAction) Type() string { return "cycle_per_page" }

// Suggestion actions
type SuggestionNavigateAction struct {
	Delta int
}

func (a SuggestionNavigateAction) Type() string { return "suggestion_navigate" }

type AcceptSuggestionAction struct{}

func (a AcceptSuggestionAction) Type() string { return "accept_suggestion" }

// Popups and pagers
type ShowDetailsAction struct{}

func (a ShowDetailsAction) Type() string { return "show_details" }

type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

type DismissAlertAction struct{}

func (a DismissAlertAction) Type() string { return "dismiss_alert" }

type QuitAction struct {
	Force bool
}

func (a QuitAction) Type() string { return "quit" }

type YankURLAction struct{}

func (a YankURLAction) Type() string { return "yank_url" }
