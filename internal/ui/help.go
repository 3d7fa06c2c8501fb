package ui

import (
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/noborus/ov/oviewer"

	"reposcout/internal/domain"
)

// pagerClosedMsg reports how a pager session ended
type pagerClosedMsg struct {
	err error
}

var helpSections = []string{"Keyword", "Search controls", "Results", "Other"}

// HelpRenderer handles help content rendering
type HelpRenderer struct {
	keys KeyMap
}

// NewHelpRenderer creates a new help renderer
func NewHelpRenderer(keys KeyMap) *HelpRenderer {
	return &HelpRenderer{keys: keys}
}

// RenderHelpContent generates help content with colors for the pager
func (r *HelpRenderer) RenderHelpContent() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220")).
		Width(12)

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	var help strings.Builder
	help.WriteString(titleStyle.Render("reposcout help"))
	help.WriteString("\n")

	for i, group := range r.keys.FullHelp() {
		help.WriteString(sectionStyle.Render(helpSections[i%len(helpSections)]))
		help.WriteString("\n")
		for _, b := range group {
			h := b.Help()
			help.WriteString(fmt.Sprintf("  %s %s\n", keyStyle.Render(h.Key), descStyle.Render(h.Desc)))
		}
	}

	help.WriteString("\n")
	help.WriteString(lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241")).Render(
		"  While editing the keyword: ↑/↓ pick a suggestion, enter searches, esc leaves."))
	help.WriteString("\n")

	return help.String()
}

// RenderRepositoryDetails describes one result for the pager
func RenderRepositoryDetails(repo domain.Repository) string {
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Width(14)
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")).Render(repo.FullName))
	b.WriteString("\n\n")
	if repo.Description != "" {
		b.WriteString(repo.Description)
		b.WriteString("\n\n")
	}

	row := func(label, value string) {
		if value == "" {
			return
		}
		b.WriteString(labelStyle.Render(label))
		b.WriteString(value)
		b.WriteString("\n")
	}
	row("URL", repo.HTMLURL)
	row("Language", repo.Language)
	row("Stars", humanize.Comma(int64(repo.Stars)))
	row("Forks", humanize.Comma(int64(repo.Forks)))
	row("Open issues", humanize.Comma(int64(repo.OpenIssues)))
	if len(repo.Topics) > 0 {
		row("Topics", strings.Join(repo.Topics, ", "))
	}
	if !repo.UpdatedAt.IsZero() {
		row("Updated", humanize.Time(repo.UpdatedAt))
	}
	if repo.Archived {
		row("Status", "archived")
	}
	return b.String()
}

// pagerCommand shows content in the ov pager. It implements tea.ExecCommand
// so Bubble Tea releases the terminal while ov runs.
type pagerCommand struct {
	content string
}

func (c *pagerCommand) Run() error {
	root, err := oviewer.NewRoot(strings.NewReader(c.content))
	if err != nil {
		return err
	}

	// Don't write the document back to the terminal on exit
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}

// ov opens the terminal itself
func (c *pagerCommand) SetStdin(io.Reader)  {}
func (c *pagerCommand) SetStdout(io.Writer) {}
func (c *pagerCommand) SetStderr(io.Writer) {}

// showInPager returns a command that pages content and reports back with a
// pagerClosedMsg
func showInPager(content string) tea.Cmd {
	return tea.Exec(&pagerCommand{content: content}, func(err error) tea.Msg {
		return pagerClosedMsg{err: err}
	})
}
