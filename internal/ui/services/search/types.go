package search

// State holds search trigger state
type State struct {
	LastKeyword string
	Requests    int
	Ignored     int // clicks that found no keyword
}
