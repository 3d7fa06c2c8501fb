package paging

// State holds paging state
type State struct {
	Page    int
	PerPage int
	Dropped int // per-page selections rejected as invalid
}
