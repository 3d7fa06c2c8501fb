package sorting

import "reposcout/internal/domain"

// State holds sorting state
type State struct {
	Changes int
	Last    domain.SortSpec
}
