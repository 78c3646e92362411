package trafficflow

import (
	"fmt"

	"github.com/google/uuid"
)

// Phase is the signal phase held by the active direction
type Phase int

const (
	PhaseGreen Phase = iota
	PhaseYellow
)

func (p Phase) String() string {
	switch p {
	case PhaseGreen:
		return "Green"
	case PhaseYellow:
		return "Yellow"
	default:
		return "Unknown"
	}
}

// MarshalText implements encoding.TextMarshaler
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// Status is the lifecycle of one schedule run
type Status int

const (
	// StatusIdle is the zero value: no counts have been scheduled yet
	StatusIdle Status = iota
	StatusRunning
	StatusComplete
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusRunning:
		return "running"
	case StatusComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Signal is the light shown to one approach
type Signal int

const (
	SignalRed Signal = iota
	SignalYellow
	SignalGreen
)

func (s Signal) String() string {
	switch s {
	case SignalGreen:
		return "GREEN"
	case SignalYellow:
		return "YELLOW"
	default:
		return "RED"
	}
}

// MarshalText implements encoding.TextMarshaler
func (s Signal) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Step names one node of the phase state machine: Green(d), Yellow(d) or Complete
type Step struct {
	Direction Direction `json:"direction"`
	Phase     Phase     `json:"phase"`
	Complete  bool      `json:"complete"`
}

func (s Step) String() string {
	if s.Complete {
		return "Complete"
	}
	return fmt.Sprintf("%s(%s)", s.Phase, s.Direction)
}

// Transition records a change of step caused by a tick
type Transition struct {
	From Step `json:"from"`
	To   Step `json:"to"`
}

func (t Transition) String() string {
	return fmt.Sprintf("%s -> %s", t.From, t.To)
}

// ScheduleState is the complete state of one run. It is a value: Advance
// returns a new state and never mutates its input.
type ScheduleState struct {
	runID     string
	counts    VehicleCounts
	ranked    []RankedEntry
	policy    TimingPolicy
	index     int
	phase     Phase
	remaining int
	completed [len(canonicalOrder)]bool
	status    Status
	ticks     int
}

// NewSchedule validates the counts and policy, ranks the directions and
// enters Green for the busiest one
func NewSchedule(counts VehicleCounts, policy TimingPolicy) (ScheduleState, error) {
	if err := counts.Validate(); err != nil {
		return ScheduleState{}, err
	}
	if err := policy.Validate(); err != nil {
		return ScheduleState{}, err
	}

	frozen := counts.Clone()
	ranked := Rank(frozen)
	return ScheduleState{
		runID:     uuid.NewString(),
		counts:    frozen,
		ranked:    ranked,
		policy:    policy,
		index:     0,
		phase:     PhaseGreen,
		remaining: policy.GreenDuration(ranked[0].Count),
		status:    StatusRunning,
	}, nil
}

// Advance consumes one time unit. The returned tick describes the step as
// it was observed at the start of the unit, plus any transition it caused.
// Advancing an idle or complete state fails with InvalidStateError.
func Advance(s ScheduleState) (ScheduleState, TickEvent, error) {
	switch s.status {
	case StatusIdle:
		return s, TickEvent{}, NewNotStartedError("Advance")
	case StatusComplete:
		return s, TickEvent{}, NewAlreadyCompleteError("Advance")
	}

	active := s.ranked[s.index].Direction
	event := newTickEvent(s)

	next := s
	next.ticks++
	next.remaining--
	if next.remaining > 0 {
		return next, event, nil
	}

	from := s.Step()
	switch s.phase {
	case PhaseGreen:
		next.phase = PhaseYellow
		next.remaining = s.policy.YellowDuration()
	case PhaseYellow:
		next.completed[active] = true
		next.index++
		event.Completed = true
		if next.index < len(next.ranked) {
			next.phase = PhaseGreen
			next.remaining = s.policy.GreenDuration(next.ranked[next.index].Count)
		} else {
			next.status = StatusComplete
			next.remaining = 0
		}
	}
	event.Transition = &Transition{From: from, To: next.Step()}
	return next, event, nil
}

// RunID identifies the run this state belongs to
func (s ScheduleState) RunID() string {
	return s.runID
}

// WithRunID returns a copy of the state carrying the given run ID
func (s ScheduleState) WithRunID(id string) ScheduleState {
	s.runID = id
	return s
}

// Status returns the lifecycle status
func (s ScheduleState) Status() Status {
	return s.status
}

// Done reports whether every direction has finished its yellow phase
func (s ScheduleState) Done() bool {
	return s.status == StatusComplete
}

// Index is the position of the active direction in the ranked order
func (s ScheduleState) Index() int {
	return s.index
}

// ActiveDirection returns the direction holding green or yellow.
// The second result is false when the state is idle or complete.
func (s ScheduleState) ActiveDirection() (Direction, bool) {
	if s.status != StatusRunning {
		return 0, false
	}
	return s.ranked[s.index].Direction, true
}

// Phase returns the phase of the active direction
func (s ScheduleState) Phase() Phase {
	return s.phase
}

// Remaining returns the countdown of the current phase
func (s ScheduleState) Remaining() int {
	return s.remaining
}

// Ticks returns the number of time units consumed so far
func (s ScheduleState) Ticks() int {
	return s.ticks
}

// Policy returns the timing policy driving the run
func (s ScheduleState) Policy() TimingPolicy {
	return s.policy
}

// Step returns the current node of the phase state machine
func (s ScheduleState) Step() Step {
	if s.status == StatusComplete {
		return Step{Complete: true}
	}
	if s.status == StatusIdle {
		return Step{}
	}
	return Step{Direction: s.ranked[s.index].Direction, Phase: s.phase}
}

// Ranked returns a copy of the ranked order
func (s ScheduleState) Ranked() []RankedEntry {
	out := make([]RankedEntry, len(s.ranked))
	copy(out, s.ranked)
	return out
}

// Counts returns a copy of the counts the run was created from
func (s ScheduleState) Counts() VehicleCounts {
	if s.counts == nil {
		return nil
	}
	return s.counts.Clone()
}

// Completed returns the serviced directions in the order they completed
func (s ScheduleState) Completed() []Direction {
	out := make([]Direction, 0, len(canonicalOrder))
	for _, e := range s.ranked {
		if s.completed[e.Direction] {
			out = append(out, e.Direction)
		}
	}
	return out
}

// IsCompleted reports whether d has finished both green and yellow
func (s ScheduleState) IsCompleted(d Direction) bool {
	if !d.Valid() {
		return false
	}
	return s.completed[d]
}

// Signals returns the light shown to each approach. Exactly one direction
// is non-red while running; all are red otherwise.
func (s ScheduleState) Signals() map[Direction]Signal {
	signals := make(map[Direction]Signal, len(canonicalOrder))
	for _, d := range canonicalOrder {
		signals[d] = SignalRed
	}
	if active, ok := s.ActiveDirection(); ok {
		if s.phase == PhaseGreen {
			signals[active] = SignalGreen
		} else {
			signals[active] = SignalYellow
		}
	}
	return signals
}

// Snapshot is the read-only view handed to presentation
type Snapshot struct {
	RunID           string               `json:"run_id"`
	Status          Status               `json:"status"`
	ActiveDirection *Direction           `json:"active_direction,omitempty"`
	Phase           *Phase               `json:"phase,omitempty"`
	Remaining       int                  `json:"remaining"`
	Counts          VehicleCounts        `json:"counts"`
	Ranked          []RankedEntry        `json:"ranked"`
	Completed       []Direction          `json:"completed"`
	Signals         map[Direction]Signal `json:"signals"`
	Ticks           int                  `json:"ticks"`
}

// Snapshot captures the state for presentation
func (s ScheduleState) Snapshot() Snapshot {
	snap := Snapshot{
		RunID:     s.runID,
		Status:    s.status,
		Remaining: s.remaining,
		Counts:    s.Counts(),
		Ranked:    s.Ranked(),
		Completed: s.Completed(),
		Signals:   s.Signals(),
		Ticks:     s.ticks,
	}
	if active, ok := s.ActiveDirection(); ok {
		phase := s.phase
		snap.ActiveDirection = &active
		snap.Phase = &phase
	}
	return snap
}
