package report

import (
	"testing"

	"github.com/braincast-labs/braincast/internal/models"
)

func TestTransition(t *testing.T) {
	tests := []struct {
		name  string
		state models.ScreenState
		ev    event
		next  models.ScreenState
		ok    bool
	}{
		{"start from landing", models.StateLanding, eventStart, models.StateLoading, true},
		{"start from loading rejected", models.StateLoading, eventStart, models.StateLoading, false},
		{"start from report rejected", models.StateReport, eventStart, models.StateReport, false},
		{"loaded from loading", models.StateLoading, eventLoaded, models.StateReport, true},
		{"loaded from landing rejected", models.StateLanding, eventLoaded, models.StateLanding, false},
		{"loaded from report rejected", models.StateReport, eventLoaded, models.StateReport, false},
		{"reset from landing", models.StateLanding, eventReset, models.StateLanding, true},
		{"reset from loading", models.StateLoading, eventReset, models.StateLanding, true},
		{"reset from report", models.StateReport, eventReset, models.StateLanding, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, ok := transition(tt.state, tt.ev)
			if next != tt.next || ok != tt.ok {
				t.Errorf("transition(%s, %d) = (%s, %v), want (%s, %v)",
					tt.state, tt.ev, next, ok, tt.next, tt.ok)
			}
		})
	}
}
