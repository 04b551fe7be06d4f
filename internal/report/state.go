package report

import "github.com/braincast-labs/braincast/internal/models"

// event drives the screen state machine.
type event int

const (
	eventStart event = iota
	eventLoaded
	eventReset
)

// transition is the pure screen state machine. It returns the next state
// for (state, event) and whether that edge is legal. Loading has exactly
// one outgoing edge, to report, so a run can never strand the machine
// there; reset is legal from every state.
func transition(state models.ScreenState, ev event) (models.ScreenState, bool) {
	switch ev {
	case eventStart:
		if state == models.StateLanding {
			return models.StateLoading, true
		}
	case eventLoaded:
		if state == models.StateLoading {
			return models.StateReport, true
		}
	case eventReset:
		return models.StateLanding, true
	}
	return state, false
}
