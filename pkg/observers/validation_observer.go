package observers

import (
	"fmt"
	"sync"

	"github.com/anggasct/trafficflow"
)

// ValidationObserver checks schedule invariants while a run is observed:
// green is always followed by yellow of the same direction, yellow by the
// next ranked green or Complete, and the tick total matches the cycle time
type ValidationObserver struct {
	trafficflow.BaseObserver
	expectedOrder []trafficflow.Direction
	cycleTime     int
	serviced      []trafficflow.Direction
	ticks         int
	lastSeq       int
	violations    []string
	mutex         sync.RWMutex
}

// NewValidationObserver creates a new validation observer
func NewValidationObserver() *ValidationObserver {
	return &ValidationObserver{
		violations: make([]string, 0),
	}
}

// OnStart records the ranked order and expected cycle time
func (o *ValidationObserver) OnStart(state trafficflow.ScheduleState) {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	ranked := state.Ranked()
	o.expectedOrder = make([]trafficflow.Direction, 0, len(ranked))
	for _, e := range ranked {
		o.expectedOrder = append(o.expectedOrder, e.Direction)
	}
	o.cycleTime = state.Policy().CycleTime(ranked)
	o.serviced = nil
	o.ticks = 0
	o.lastSeq = 0
}

// OnTick validates tick sequencing and countdown values
func (o *ValidationObserver) OnTick(event trafficflow.TickEvent) {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	o.ticks++
	if event.Seq != o.lastSeq+1 {
		o.violations = append(o.violations, fmt.Sprintf("tick %d followed tick %d", event.Seq, o.lastSeq))
	}
	o.lastSeq = event.Seq
	if event.Remaining <= 0 {
		o.violations = append(o.violations, fmt.Sprintf("tick %d observed non-positive countdown %d", event.Seq, event.Remaining))
	}
}

// OnPhaseChange validates transitions
func (o *ValidationObserver) OnPhaseChange(from trafficflow.Step, to trafficflow.Step) {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	switch {
	case from.Complete:
		o.violations = append(o.violations, fmt.Sprintf("transition out of Complete to '%s'", to))
	case from.Phase == trafficflow.PhaseGreen:
		if to.Complete || to.Phase != trafficflow.PhaseYellow || to.Direction != from.Direction {
			o.violations = append(o.violations, fmt.Sprintf("invalid transition from '%s' to '%s'", from, to))
		}
	case from.Phase == trafficflow.PhaseYellow:
		next := len(o.serviced) + 1
		if to.Complete {
			if next != len(o.expectedOrder) {
				o.violations = append(o.violations, fmt.Sprintf("completed after %d of %d directions", next, len(o.expectedOrder)))
			}
			return
		}
		if to.Phase != trafficflow.PhaseGreen || next >= len(o.expectedOrder) || to.Direction != o.expectedOrder[next] {
			o.violations = append(o.violations, fmt.Sprintf("invalid transition from '%s' to '%s'", from, to))
		}
	}
}

// OnDirectionComplete records the serviced direction
func (o *ValidationObserver) OnDirectionComplete(direction trafficflow.Direction, state trafficflow.ScheduleState) {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	o.serviced = append(o.serviced, direction)
	if len(state.Completed()) != state.Index() {
		o.violations = append(o.violations, fmt.Sprintf("completed set %d does not match index %d", len(state.Completed()), state.Index()))
	}
}

// OnComplete validates the total number of ticks
func (o *ValidationObserver) OnComplete(report *trafficflow.Report) {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	if o.ticks != o.cycleTime {
		o.violations = append(o.violations, fmt.Sprintf("observed %d ticks for a %ds cycle", o.ticks, o.cycleTime))
	}
	if len(o.serviced) != len(o.expectedOrder) {
		o.violations = append(o.violations, fmt.Sprintf("serviced %d of %d directions", len(o.serviced), len(o.expectedOrder)))
	}
}

// OnError records errors as violations
func (o *ValidationObserver) OnError(err error) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.violations = append(o.violations, fmt.Sprintf("Error occurred: %v", err))
}

// GetViolations returns all validation violations
func (o *ValidationObserver) GetViolations() []string {
	o.mutex.RLock()
	defer o.mutex.RUnlock()

	result := make([]string, len(o.violations))
	copy(result, o.violations)
	return result
}

// HasViolations returns whether any violations occurred
func (o *ValidationObserver) HasViolations() bool {
	o.mutex.RLock()
	defer o.mutex.RUnlock()
	return len(o.violations) > 0
}

// Reset resets the validation state
func (o *ValidationObserver) Reset() {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	o.serviced = nil
	o.ticks = 0
	o.lastSeq = 0
	o.violations = make([]string, 0)
}
