package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	Prompt        lipgloss.Style
	Dim           lipgloss.Style
	Status        lipgloss.Style
	Help          lipgloss.Style
	Main          lipgloss.Style
	Scroll        lipgloss.Style
	Header        lipgloss.Style
	ActiveSort    lipgloss.Style
	Suggestion    lipgloss.Style
	SuggestionSel lipgloss.Style
	Highlight     lipgloss.Style
	SelectionBg   lipgloss.Style
	Language      lipgloss.Style
	Stars         lipgloss.Style
	Archived      lipgloss.Style
	StatusError   lipgloss.Style
	StatusLoading lipgloss.Style
	StatusSuccess lipgloss.Style
	AlertBox      lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Prompt: lipgloss.NewStyle().Foreground(lipgloss.Color("99")).Bold(true),
		Dim:    lipgloss.NewStyle().Faint(true),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1),
		Help: lipgloss.NewStyle().Faint(true),
		Main: lipgloss.NewStyle().
			Padding(1, 2),
		Scroll:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Header:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Bold(true),
		ActiveSort:    lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true), // yellow
		Suggestion:    lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		SuggestionSel: lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Background(lipgloss.Color("238")),
		Highlight:     lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		SelectionBg:   lipgloss.NewStyle().Background(lipgloss.Color("238")),
		Language:      lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
		Stars:         lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		Archived:      lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Faint(true),
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		StatusLoading: lipgloss.NewStyle().Foreground(lipgloss.Color("241")), // gray
		StatusSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
		AlertBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("203")).
			Padding(1, 2),
	}
}

// LanguageColor returns the display color for a repository language
func LanguageColor(language string) string {
	switch language {
	case "Go":
		return "45" // cyan
	case "Rust":
		return "208" // orange
	case "TypeScript", "JavaScript":
		return "220" // yellow
	case "Python":
		return "33" // blue
	case "":
		return "241" // gray
	default:
		return "141" // purple
	}
}
