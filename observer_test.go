package trafficflow

import (
	"testing"
)

type panickingObserver struct {
	BaseObserver
	errors []error
}

func (o *panickingObserver) OnTick(event TickEvent) {
	panic("boom")
}

func (o *panickingObserver) OnError(err error) {
	o.errors = append(o.errors, err)
}

type minimalObserver struct {
	ticks int
}

func (o *minimalObserver) OnTick(event TickEvent)           { o.ticks++ }
func (o *minimalObserver) OnPhaseChange(from Step, to Step) {}

func TestObserverManager_PanicRecovery(t *testing.T) {
	panicky := &panickingObserver{}
	recorder := NewTestObserver()
	s := CreateScenarioScheduler(t, panicky, recorder)

	if err := s.Start(); err != nil {
		t.Fatalf("Expected no error starting scheduler, got: %v", err)
	}
	if _, err := s.Tick(); err != nil {
		t.Fatalf("Expected tick to survive a panicking observer, got: %v", err)
	}

	if len(panicky.errors) != 1 {
		t.Errorf("Expected 1 observer error, got %d", len(panicky.errors))
	}
	if recorder.TickCount() != 1 {
		t.Errorf("Expected later observers to still receive the tick, got %d", recorder.TickCount())
	}
}

func TestObserverManager_RequiredOnly(t *testing.T) {
	minimal := &minimalObserver{}
	s := CreateScenarioScheduler(t, minimal)
	if err := s.Start(); err != nil {
		t.Fatalf("Expected no error starting scheduler, got: %v", err)
	}
	for i := 0; i < 3; i++ {
		if _, err := s.Tick(); err != nil {
			t.Fatalf("Unexpected tick error: %v", err)
		}
	}
	if minimal.ticks != 3 {
		t.Errorf("Expected 3 ticks, got %d", minimal.ticks)
	}
}

func TestObserverManager_AddRemove(t *testing.T) {
	om := NewObserverManager()
	a := NewTestObserver()
	b := NewTestObserver()
	om.AddObserver(a)
	om.AddObserver(b)
	if om.Len() != 2 {
		t.Fatalf("Expected 2 observers, got %d", om.Len())
	}

	om.RemoveObserver(a)
	om.NotifyTick(TickEvent{Seq: 1})
	if a.TickCount() != 0 || b.TickCount() != 1 {
		t.Errorf("Expected only the remaining observer to be notified, got a=%d b=%d", a.TickCount(), b.TickCount())
	}
}

func TestScheduler_RemoveObserver(t *testing.T) {
	recorder := NewTestObserver()
	s := CreateScenarioScheduler(t)
	s.AddObserver(recorder)
	if err := s.Start(); err != nil {
		t.Fatalf("Expected no error starting scheduler, got: %v", err)
	}
	s.RemoveObserver(recorder)
	if _, err := s.Tick(); err != nil {
		t.Fatalf("Unexpected tick error: %v", err)
	}
	if len(recorder.Starts) != 1 || recorder.TickCount() != 0 {
		t.Errorf("Expected start only, got starts=%d ticks=%d", len(recorder.Starts), recorder.TickCount())
	}
}
