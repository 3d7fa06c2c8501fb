package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap lists the bindings shown in the footer and the help pager. Input
// itself is decoded by the input handler's modes.
type KeyMap struct {
	Edit     key.Binding
	Search   key.Binding
	Accept   key.Binding
	Stars    key.Binding
	Forks    key.Binding
	PrevPage key.Binding
	NextPage key.Binding
	PerPage  key.Binding
	Up       key.Binding
	Down     key.Binding
	Top      key.Binding
	Bottom   key.Binding
	Details  key.Binding
	Yank     key.Binding
	Help     key.Binding
	Quit     key.Binding
}

// DefaultKeyMap returns the normal mode bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Edit:     key.NewBinding(key.WithKeys("/", "i"), key.WithHelp("/", "keyword")),
		Search:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "search")),
		Accept:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "accept suggestion")),
		Stars:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort by stars")),
		Forks:    key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "sort by forks")),
		PrevPage: key.NewBinding(key.WithKeys("[", "h", "left"), key.WithHelp("[", "previous page")),
		NextPage: key.NewBinding(key.WithKeys("]", "l", "right"), key.WithHelp("]", "next page")),
		PerPage:  key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "per page")),
		Up:       key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("↓/j", "down")),
		Top:      key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("gg", "top")),
		Bottom:   key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "bottom")),
		Details:  key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "details")),
		Yank:     key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy url")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Edit, k.Search, k.Stars, k.Forks, k.PrevPage, k.NextPage, k.PerPage, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Edit, k.Search, k.Accept},
		{k.Stars, k.Forks, k.PrevPage, k.NextPage, k.PerPage},
		{k.Up, k.Down, k.Top, k.Bottom},
		{k.Details, k.Yank, k.Help, k.Quit},
	}
}
