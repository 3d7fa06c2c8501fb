package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"reposcout/internal/domain"
)

// Column widths of the result table
const (
	starsWidth    = 9
	forksWidth    = 8
	languageWidth = 12
	minNameWidth  = 20
)

// RepositoryRenderer handles rendering of result rows
type RepositoryRenderer struct {
	styles *Styles
}

// NewRepositoryRenderer creates a new repository renderer
func NewRepositoryRenderer(styles *Styles) *RepositoryRenderer {
	return &RepositoryRenderer{styles: styles}
}

// nameWidth is what is left for the repository name on a line of width
func nameWidth(width int) int {
	w := width - starsWidth - forksWidth - languageWidth - 6
	if w < minNameWidth {
		w = minNameWidth
	}
	return w
}

// RenderHeader renders the column titles. The active sort column carries
// the order arrow.
func (r *RepositoryRenderer) RenderHeader(sort domain.SortSpec, width int) string {
	stars := "stars"
	forks := "forks"
	starsStyle := r.styles.Header
	forksStyle := r.styles.Header
	switch sort.Field {
	case domain.SortStars:
		stars += " " + sort.Order.Arrow()
		starsStyle = r.styles.ActiveSort
	case domain.SortForks:
		forks += " " + sort.Order.Arrow()
		forksStyle = r.styles.ActiveSort
	}

	return fmt.Sprintf("  %s %s %s %s",
		r.styles.Header.Render(pad("repository", nameWidth(width))),
		starsStyle.Render(padLeft(stars, starsWidth)),
		forksStyle.Render(padLeft(forks, forksWidth)),
		r.styles.Header.Render(pad("language", languageWidth)),
	)
}

// RenderRepository renders one result row
func (r *RepositoryRenderer) RenderRepository(repo domain.Repository, isSelected bool, width int) string {
	cursor := "  "
	if isSelected {
		cursor = r.styles.Highlight.Render("> ")
	}

	nameStyle := lipgloss.NewStyle()
	if repo.Archived {
		nameStyle = r.styles.Archived
	}
	langStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(LanguageColor(repo.Language)))
	if isSelected {
		nameStyle = nameStyle.Inherit(r.styles.SelectionBg).Bold(true)
	}

	return fmt.Sprintf("%s%s %s %s %s",
		cursor,
		nameStyle.Render(pad(repo.FullName, nameWidth(width))),
		r.styles.Stars.Render(padLeft(FormatCount(repo.Stars), starsWidth)),
		padLeft(FormatCount(repo.Forks), forksWidth),
		langStyle.Render(pad(repo.Language, languageWidth)),
	)
}

// RenderDescription renders the description line shown under the selected row
func (r *RepositoryRenderer) RenderDescription(repo domain.Repository, width int) string {
	if repo.Description == "" {
		return ""
	}
	return "    " + r.styles.Dim.Render(truncate(repo.Description, width-6))
}

// FormatCount abbreviates large counts, e.g. 12345 becomes 12.3k
func FormatCount(n int) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fm", float64(n)/1_000_000)
	case n >= 10_000:
		return fmt.Sprintf("%.1fk", float64(n)/1_000)
	default:
		return fmt.Sprintf("%d", n)
	}
}

func truncate(s string, width int) string {
	if width <= 1 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-1]) + "…"
}

func pad(s string, width int) string {
	s = truncate(s, width)
	if n := lipgloss.Width(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

func padLeft(s string, width int) string {
	if n := lipgloss.Width(s); n < width {
		return strings.Repeat(" ", width-n) + s
	}
	return s
}
