package trafficflow

import (
	"time"

	"github.com/google/uuid"
)

// TickEvent is emitted once per consumed time unit
type TickEvent struct {
	ID        string        `json:"id"`
	RunID     string        `json:"run_id"`
	Seq       int           `json:"seq"`
	Direction Direction     `json:"direction"`
	Phase     Phase         `json:"phase"`
	Remaining int           `json:"remaining"`
	Counts    VehicleCounts `json:"counts"`
	// Transition is set when the tick ended the current phase
	Transition *Transition `json:"transition,omitempty"`
	// Completed is set when the tick ended the direction's yellow phase
	Completed bool      `json:"completed"`
	Timestamp time.Time `json:"timestamp"`
}

func newTickEvent(s ScheduleState) TickEvent {
	return TickEvent{
		ID:        uuid.NewString(),
		RunID:     s.runID,
		Seq:       s.ticks + 1,
		Direction: s.ranked[s.index].Direction,
		Phase:     s.phase,
		Remaining: s.remaining,
		Counts:    s.Counts(),
		Timestamp: time.Now(),
	}
}

// Step returns the state machine node the tick was observed in
func (e TickEvent) Step() Step {
	return Step{Direction: e.Direction, Phase: e.Phase}
}

// IsFinal reports whether the tick moved the schedule to Complete
func (e TickEvent) IsFinal() bool {
	return e.Transition != nil && e.Transition.To.Complete
}
