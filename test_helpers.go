package trafficflow

import (
	"sync"
	"testing"
)

// TestObserver is a mock observer for testing that captures all observer events
type TestObserver struct {
	mutex        sync.RWMutex
	Ticks        []TickEvent
	PhaseChanges []Transition
	Starts       []ScheduleState
	Serviced     []Direction
	Reports      []*Report
	Errors       []error
}

// NewTestObserver creates a new test observer
func NewTestObserver() *TestObserver {
	return &TestObserver{
		Ticks:        make([]TickEvent, 0),
		PhaseChanges: make([]Transition, 0),
		Starts:       make([]ScheduleState, 0),
		Serviced:     make([]Direction, 0),
		Reports:      make([]*Report, 0),
		Errors:       make([]error, 0),
	}
}

// Observer interface implementations
func (o *TestObserver) OnTick(event TickEvent) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.Ticks = append(o.Ticks, event)
}

func (o *TestObserver) OnPhaseChange(from Step, to Step) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.PhaseChanges = append(o.PhaseChanges, Transition{From: from, To: to})
}

// ExtendedObserver interface implementations
func (o *TestObserver) OnStart(state ScheduleState) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.Starts = append(o.Starts, state)
}

func (o *TestObserver) OnDirectionComplete(direction Direction, state ScheduleState) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.Serviced = append(o.Serviced, direction)
}

func (o *TestObserver) OnComplete(report *Report) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.Reports = append(o.Reports, report)
}

func (o *TestObserver) OnError(err error) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.Errors = append(o.Errors, err)
}

// Helper methods for test assertions
func (o *TestObserver) Reset() {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.Ticks = nil
	o.PhaseChanges = nil
	o.Starts = nil
	o.Serviced = nil
	o.Reports = nil
	o.Errors = nil
}

func (o *TestObserver) TickCount() int {
	o.mutex.RLock()
	defer o.mutex.RUnlock()
	return len(o.Ticks)
}

func (o *TestObserver) PhaseChangeCount() int {
	o.mutex.RLock()
	defer o.mutex.RUnlock()
	return len(o.PhaseChanges)
}

func (o *TestObserver) ErrorCount() int {
	o.mutex.RLock()
	defer o.mutex.RUnlock()
	return len(o.Errors)
}

func (o *TestObserver) LastTick() *TickEvent {
	o.mutex.RLock()
	defer o.mutex.RUnlock()
	if len(o.Ticks) == 0 {
		return nil
	}
	return &o.Ticks[len(o.Ticks)-1]
}

// Test scheduler builders - common count configurations for testing

// ScenarioCounts is the mixed-load scenario: North 10, East 4, South 0, West 6
func ScenarioCounts() VehicleCounts {
	return VehicleCounts{North: 10, East: 4, South: 0, West: 6}
}

// UniformCounts returns counts with the same value for every direction
func UniformCounts(n int) VehicleCounts {
	return VehicleCounts{North: n, East: n, South: n, West: n}
}

// CreateScenarioScheduler builds a scheduler for ScenarioCounts with the default policy
func CreateScenarioScheduler(t *testing.T, observers ...Observer) *Scheduler {
	t.Helper()
	b := NewScheduler().WithCounts(ScenarioCounts())
	for _, o := range observers {
		b = b.WithObserver(o)
	}
	s, err := b.Build()
	if err != nil {
		t.Fatalf("Expected no error building scheduler, got: %v", err)
	}
	return s
}

// Test assertions and utilities

// DrainSchedule advances a state until Complete and returns every emitted tick
func DrainSchedule(t *testing.T, state ScheduleState) (ScheduleState, []TickEvent) {
	t.Helper()
	var ticks []TickEvent
	for !state.Done() {
		next, event, err := Advance(state)
		if err != nil {
			t.Fatalf("Unexpected error advancing schedule at tick %d: %v", len(ticks)+1, err)
		}
		ticks = append(ticks, event)
		state = next
	}
	return state, ticks
}

// AssertStep checks the state machine node of a schedule state
func AssertStep(t *testing.T, state ScheduleState, expected Step) {
	t.Helper()
	if got := state.Step(); got != expected {
		t.Errorf("Expected step %s, got %s", expected, got)
	}
}

// AssertSingleActive checks that exactly one direction shows a non-red light while running
func AssertSingleActive(t *testing.T, state ScheduleState) {
	t.Helper()
	active := 0
	for _, signal := range state.Signals() {
		if signal != SignalRed {
			active++
		}
	}
	expected := 1
	if state.Status() != StatusRunning {
		expected = 0
	}
	if active != expected {
		t.Errorf("Expected %d active directions, got %d", expected, active)
	}
}
