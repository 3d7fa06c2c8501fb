package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"reposcout/internal/domain"
)

// MaxSuggestions is the number of suggestion lines shown under the keyword
const MaxSuggestions = 8

// chromeLines counts every line of the page that is not a result row
const chromeLines = 12

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width           int
	Height          int
	KeywordInput    string // rendered text input
	Editing         bool
	Suggestions     []domain.Suggestion
	SuggestionIndex int
	Results         []domain.Repository
	TotalCount      int
	HasSearched     bool
	SelectedIndex   int
	ViewportOffset  int
	ViewportHeight  int
	Sort            domain.SortSpec
	Page            int
	PerPage         string
	Loading         bool
	Spinner         string
	Alert           string
	StatusMessage   string
	HelpView        string
}

// ListHeight returns how many result rows fit on a screen of height with
// the given number of suggestions showing
func ListHeight(height, suggestions int) int {
	if suggestions > MaxSuggestions {
		suggestions = MaxSuggestions
	}
	h := height - chromeLines - suggestions
	if h < 3 {
		h = 3
	}
	return h
}

// Renderer handles all view rendering
type Renderer struct {
	styles      *Styles
	repoRender  *RepositoryRenderer
	popupRender *PopupRenderer
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:      styles,
		repoRender:  NewRepositoryRenderer(styles),
		popupRender: NewPopupRenderer(styles),
	}
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	termWidth := state.Width
	if termWidth <= 0 {
		termWidth = 80
	}
	innerWidth := termWidth - 4 // Main container padding

	content := &strings.Builder{}
	content.WriteString(r.renderTitle(state, innerWidth))
	content.WriteString("\n\n")

	prompt := r.styles.Dim
	if state.Editing {
		prompt = r.styles.Prompt
	}
	content.WriteString(prompt.Render("Keyword: "))
	content.WriteString(state.KeywordInput)
	content.WriteString("\n")
	if s := r.renderSuggestions(state); s != "" {
		content.WriteString(s)
		content.WriteString("\n")
	}
	content.WriteString("\n")

	content.WriteString(r.repoRender.RenderHeader(state.Sort, innerWidth))
	content.WriteString("\n")
	content.WriteString(r.renderResultList(state, innerWidth))
	content.WriteString("\n\n")

	content.WriteString(r.renderFooter(state, innerWidth))

	main := r.styles.Main.Render(content.String())
	if state.Alert != "" {
		return r.popupRender.RenderAlert(main, state.Alert, state.Height, state.Width)
	}
	return main
}

func (r *Renderer) renderTitle(state ViewState, width int) string {
	logo := r.styles.Title.Render("reposcout")
	if !state.Loading {
		return logo
	}

	indicator := r.styles.Dim.Render(fmt.Sprintf("%s Searching", state.Spinner))
	padding := width - lipgloss.Width(logo) - lipgloss.Width(indicator)
	if padding < 2 {
		padding = 2
	}
	return logo + strings.Repeat(" ", padding) + indicator
}

func (r *Renderer) renderSuggestions(state ViewState) string {
	if len(state.Suggestions) == 0 {
		return ""
	}
	lines := make([]string, 0, MaxSuggestions)
	for i, s := range state.Suggestions {
		if i == MaxSuggestions {
			break
		}
		text := s.Text
		if s.Stars > 0 {
			text = fmt.Sprintf("%s  ★ %s", text, FormatCount(s.Stars))
		}
		if i == state.SuggestionIndex {
			lines = append(lines, "  "+r.styles.SuggestionSel.Render(text))
		} else {
			lines = append(lines, "  "+r.styles.Suggestion.Render(text))
		}
	}
	return strings.Join(lines, "\n")
}

func (r *Renderer) renderResultList(state ViewState, width int) string {
	if len(state.Results) == 0 {
		switch {
		case state.Loading:
			return r.styles.Dim.Render("  Searching...")
		case state.HasSearched:
			return r.styles.Dim.Render("  No repositories found.")
		default:
			return r.styles.Dim.Render("  Type a keyword with / and press enter to search.")
		}
	}

	height := state.ViewportHeight
	if height <= 0 {
		height = len(state.Results)
	}
	start := state.ViewportOffset
	if start < 0 || start >= len(state.Results) {
		start = 0
	}

	var lines []string
	if start > 0 {
		lines = append(lines, r.styles.Scroll.Render(fmt.Sprintf("  ↑ %d more above ↑", start)))
		height--
	}
	end := start + height
	if end < len(state.Results) {
		end-- // room for the bottom indicator
	}
	if end > len(state.Results) {
		end = len(state.Results)
	}
	if end <= start {
		end = start + 1
	}

	for i := start; i < end; i++ {
		lines = append(lines, r.repoRender.RenderRepository(state.Results[i], i == state.SelectedIndex, width))
	}
	if below := len(state.Results) - end; below > 0 {
		lines = append(lines, r.styles.Scroll.Render(fmt.Sprintf("  ↓ %d more below ↓", below)))
	}
	return strings.Join(lines, "\n")
}

func (r *Renderer) renderFooter(state ViewState, width int) string {
	var b strings.Builder

	page := fmt.Sprintf("Page %d · %s per page", state.Page, state.PerPage)
	if state.HasSearched {
		page += fmt.Sprintf(" · %s results", FormatCount(state.TotalCount))
	}
	b.WriteString(r.styles.Status.UnsetMarginTop().Render(page))
	b.WriteString("\n")

	if state.SelectedIndex >= 0 && state.SelectedIndex < len(state.Results) {
		b.WriteString(r.repoRender.RenderDescription(state.Results[state.SelectedIndex], width))
	}
	b.WriteString("\n")

	if state.StatusMessage != "" {
		b.WriteString(r.styles.StatusLoading.Render(state.StatusMessage))
	}
	b.WriteString("\n")

	b.WriteString(r.styles.Help.Render(state.HelpView))
	return b.String()
}
