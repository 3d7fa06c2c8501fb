package keyword

// State holds keyword state
type State struct {
	Current string
	Edits   int
}
