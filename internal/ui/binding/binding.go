// Package binding exposes the search page's input elements as typed event
// sources.
package binding

import (
	"strconv"

	"reposcout/internal/stream"
)

// Element IDs of the search page
const (
	KeywordID      = "keyword"
	SearchID       = "search"
	SortStarsID    = "sort-stars"
	SortForksID    = "sort-forks"
	PerPageID      = "per-page"
	PreviousPageID = "previous-page"
	NextPageID     = "next-page"
)

// TextSource emits the full text of an input on every edit.
type TextSource interface {
	Changes() stream.Observable[string]
}

// ClickSource emits once per activation.
type ClickSource interface {
	Clicks() stream.Observable[struct{}]
}

// SelectionSource emits the raw value of every selection.
type SelectionSource interface {
	Selections() stream.Observable[string]
}

// TextInput is an editable text element
type TextInput struct {
	id      string
	value   string
	changes *stream.Subject[string]
}

// NewTextInput creates an empty text input
func NewTextInput(id string) *TextInput {
	return &TextInput{id: id, changes: stream.NewSubject[string]()}
}

func (t *TextInput) ID() string    { return t.id }
func (t *TextInput) Value() string { return t.value }

// Set replaces the text and notifies listeners.
func (t *TextInput) Set(value string) {
	t.value = value
	t.changes.Next(value)
}

func (t *TextInput) Changes() stream.Observable[string] {
	return t.changes.Observable()
}

// Button is a clickable element
type Button struct {
	id     string
	clicks *stream.Subject[struct{}]
}

// NewButton creates a button
func NewButton(id string) *Button {
	return &Button{id: id, clicks: stream.NewSubject[struct{}]()}
}

func (b *Button) ID() string { return b.id }

// Click activates the button.
func (b *Button) Click() {
	b.clicks.Next(struct{}{})
}

func (b *Button) Clicks() stream.Observable[struct{}] {
	return b.clicks.Observable()
}

// Select is a single-choice element
type Select struct {
	id         string
	options    []string
	value      string
	selections *stream.Subject[string]
}

// NewSelect creates a select showing value among options
func NewSelect(id string, options []string, value string) *Select {
	return &Select{
		id:         id,
		options:    options,
		value:      value,
		selections: stream.NewSubject[string](),
	}
}

func (s *Select) ID() string        { return s.id }
func (s *Select) Value() string     { return s.value }
func (s *Select) Options() []string { return s.options }

// Choose selects value and notifies listeners. Values outside the options
// are passed through; validating them is up to the listener.
func (s *Select) Choose(value string) {
	s.value = value
	s.selections.Next(value)
}

// Cycle chooses the option after the current one, wrapping around.
func (s *Select) Cycle() {
	if len(s.options) == 0 {
		return
	}
	next := 0
	for i, o := range s.options {
		if o == s.value {
			next = (i + 1) % len(s.options)
			break
		}
	}
	s.Choose(s.options[next])
}

func (s *Select) Selections() stream.Observable[string] {
	return s.selections.Observable()
}

// Sources groups the search page's inputs by role.
type Sources struct {
	Keyword      TextSource
	Search       ClickSource
	SortStars    ClickSource
	SortForks    ClickSource
	PerPage      SelectionSource
	PreviousPage ClickSource
	NextPage     ClickSource
}

// Page holds the concrete elements of one search page
type Page struct {
	Keyword      *TextInput
	Search       *Button
	SortStars    *Button
	SortForks    *Button
	PerPage      *Select
	PreviousPage *Button
	NextPage     *Button
}

// NewPage creates the elements of a search page. perPage lists the page
// size choices; current is the one initially shown.
func NewPage(perPage []int, current int) *Page {
	options := make([]string, len(perPage))
	for i, n := range perPage {
		options[i] = strconv.Itoa(n)
	}
	return &Page{
		Keyword:      NewTextInput(KeywordID),
		Search:       NewButton(SearchID),
		SortStars:    NewButton(SortStarsID),
		SortForks:    NewButton(SortForksID),
		PerPage:      NewSelect(PerPageID, options, strconv.Itoa(current)),
		PreviousPage: NewButton(PreviousPageID),
		NextPage:     NewButton(NextPageID),
	}
}

// Sources returns the page's elements as event sources
func (p *Page) Sources() Sources {
	return Sources{
		Keyword:      p.Keyword,
		Search:       p.Search,
		SortStars:    p.SortStars,
		SortForks:    p.SortForks,
		PerPage:      p.PerPage,
		PreviousPage: p.PreviousPage,
		NextPage:     p.NextPage,
	}
}
