package views

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// PopupRenderer handles popup/modal rendering
type PopupRenderer struct {
	styles *Styles
}

// NewPopupRenderer creates a new popup renderer
func NewPopupRenderer(styles *Styles) *PopupRenderer {
	return &PopupRenderer{
		styles: styles,
	}
}

// RenderAlert renders message in a bordered box centered over a greyed out
// copy of mainContent
func (pr *PopupRenderer) RenderAlert(mainContent, message string, height, width int) string {
	boxWidth := width - 10
	if boxWidth > 60 {
		boxWidth = 60
	}
	if boxWidth < 20 {
		boxWidth = 20
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		pr.styles.StatusError.Bold(true).Render("Search failed"),
		"",
		lipgloss.NewStyle().Width(boxWidth-6).Render(message),
		"",
		pr.styles.Dim.Render("press enter to dismiss"),
	)
	popup := pr.styles.AlertBox.Width(boxWidth).Render(body)

	if height <= 0 || width <= 0 {
		return popup
	}
	base := desaturateANSI(mainContent)
	overlay := lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, popup)
	return mergeLines(base, overlay)
}

// ANSI escape sequence regex to strip styles/colors
var ansiRE = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// desaturateANSI strips ANSI color/style codes and recolors text dim gray
func desaturateANSI(s string) string {
	lines := strings.Split(ansiRE.ReplaceAllString(s, ""), "\n")
	grey := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	for i, line := range lines {
		lines[i] = grey.Render(line)
	}
	return strings.Join(lines, "\n")
}

// mergeLines shows the overlay's non-blank lines over the base
func mergeLines(base, overlay string) string {
	baseLines := strings.Split(base, "\n")
	overLines := strings.Split(overlay, "\n")
	out := make([]string, len(overLines))
	for i, line := range overLines {
		if strings.TrimSpace(ansiRE.ReplaceAllString(line, "")) != "" || i >= len(baseLines) {
			out[i] = line
			continue
		}
		out[i] = baseLines[i]
	}
	return strings.Join(out, "\n")
}
