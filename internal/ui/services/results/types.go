package results

import "reposcout/internal/domain"

// State holds result pipeline state
type State struct {
	Last      domain.ResultEnvelope
	Succeeded int
	Failed    int
}
