package trafficflow

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/anggasct/trafficflow/pkg/clock"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("module", "scheduler")

// Scheduler owns the state of one run and drives it tick by tick.
// It is safe to read snapshots from another goroutine while a clock
// goroutine ticks.
type Scheduler struct {
	counts    VehicleCounts
	policy    TimingPolicy
	runID     string
	state     ScheduleState
	report    *Report
	observers *ObserverManager
	// running is held by the single Run loop allowed at a time
	running bool
	mutex   sync.RWMutex
}

func newScheduler(counts VehicleCounts, policy TimingPolicy, runID string) *Scheduler {
	return &Scheduler{
		counts:    counts.Clone(),
		policy:    policy,
		runID:     runID,
		observers: NewObserverManager(),
	}
}

// Start creates the schedule state and enters Green for the busiest direction
func (s *Scheduler) Start() error {
	s.mutex.Lock()
	if s.state.Status() == StatusRunning {
		s.mutex.Unlock()
		return NewAlreadyStartedError("Start")
	}
	state, err := s.startLocked()
	s.mutex.Unlock()

	if err != nil {
		s.observers.NotifyError(err)
		return err
	}
	s.notifyStart(state)
	return nil
}

// startLocked installs a fresh schedule state; the caller holds the lock
func (s *Scheduler) startLocked() (ScheduleState, error) {
	state, err := NewSchedule(s.counts, s.policy)
	if err != nil {
		return ScheduleState{}, err
	}
	if s.runID != "" {
		state = state.WithRunID(s.runID)
	}
	s.state = state
	s.report = nil
	return state, nil
}

func (s *Scheduler) notifyStart(state ScheduleState) {
	log.Debugf("run %s started: order=%v cycle=%ds", state.RunID(), state.Ranked(), s.policy.CycleTime(state.Ranked()))
	s.observers.NotifyStart(state)
}

// Tick consumes one time unit. Ticking an idle or complete scheduler is a
// programming error and returns InvalidStateError.
func (s *Scheduler) Tick() (TickEvent, error) {
	s.mutex.Lock()
	next, event, err := Advance(s.state)
	if err != nil {
		s.mutex.Unlock()
		s.observers.NotifyError(err)
		return TickEvent{}, err
	}
	s.state = next

	var report *Report
	if next.Done() {
		report, err = NewReport(next)
		if err != nil {
			s.mutex.Unlock()
			s.observers.NotifyError(err)
			return event, err
		}
		s.report = report
	}
	s.mutex.Unlock()

	s.observers.NotifyTick(event)
	if event.Transition != nil {
		s.observers.NotifyPhaseChange(event.Transition.From, event.Transition.To)
	}
	if event.Completed {
		s.observers.NotifyDirectionComplete(event.Direction, next)
	}
	if report != nil {
		log.Debugf("run %s complete after %d ticks", report.RunID, report.Ticks)
		s.observers.NotifyComplete(report.Clone())
	}
	return event, nil
}

// Run drives the schedule from clk until every direction is complete.
// It starts an idle scheduler. Only one Run may drive a scheduler at a time;
// a concurrent call fails with ErrCodeAlreadyStarted. Cancelling ctx abandons
// the run at the next tick boundary and discards its state.
func (s *Scheduler) Run(ctx context.Context, clk clock.Clock) (*Report, error) {
	s.mutex.Lock()
	if s.running {
		s.mutex.Unlock()
		return nil, NewAlreadyStartedError("Run")
	}
	var started *ScheduleState
	switch s.state.Status() {
	case StatusIdle:
		state, err := s.startLocked()
		if err != nil {
			s.mutex.Unlock()
			s.observers.NotifyError(err)
			return nil, err
		}
		started = &state
	case StatusComplete:
		s.mutex.Unlock()
		return nil, NewAlreadyCompleteError("Run")
	}
	s.running = true
	s.mutex.Unlock()

	defer func() {
		s.mutex.Lock()
		s.running = false
		s.mutex.Unlock()
	}()

	if started != nil {
		s.notifyStart(*started)
	}

	for {
		if err := clk.Wait(ctx); err != nil {
			log.Debugf("run %s abandoned: %v", s.RunID(), err)
			s.Reset()
			return nil, err
		}
		event, err := s.Tick()
		if err != nil {
			return nil, err
		}
		if event.IsFinal() {
			return s.Report()
		}
	}
}

// Reset discards the current state; the scheduler returns to idle
func (s *Scheduler) Reset() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.state = ScheduleState{}
	s.report = nil
}

// Status returns the lifecycle status of the current run
func (s *Scheduler) Status() Status {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.state.Status()
}

// State returns a copy of the current schedule state
func (s *Scheduler) State() ScheduleState {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.state
}

// Report returns a copy of the final metrics. It is only valid after completion.
func (s *Scheduler) Report() (*Report, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	if s.report == nil {
		return NewReport(s.state)
	}
	return s.report.Clone(), nil
}

// RunID returns the identifier of the current run
func (s *Scheduler) RunID() string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	if id := s.state.RunID(); id != "" {
		return id
	}
	return s.runID
}

// Policy returns the timing policy used for green and yellow durations
func (s *Scheduler) Policy() TimingPolicy {
	return s.policy
}

// AddObserver adds an observer to the scheduler
func (s *Scheduler) AddObserver(observer Observer) {
	s.observers.AddObserver(observer)
}

// RemoveObserver removes an observer from the scheduler
func (s *Scheduler) RemoveObserver(observer Observer) {
	s.observers.RemoveObserver(observer)
}

// MarshalJSON serializes the live snapshot to JSON
func (s *Scheduler) MarshalJSON() ([]byte, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	data := map[string]any{
		"snapshot": s.state.Snapshot(),
		"policy":   s.policy,
	}
	if s.report != nil {
		data["report"] = s.report
	}
	return json.Marshal(data)
}
