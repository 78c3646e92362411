package trafficflow

import (
	"fmt"
	"sync"
)

// Observer represents an entity that observes a schedule run
type Observer interface {
	// Required methods

	// OnTick is called once per consumed time unit
	OnTick(event TickEvent)

	// OnPhaseChange is called when a tick moves the schedule to another step
	OnPhaseChange(from Step, to Step)
}

// ExtendedObserver provides additional optional observation methods
type ExtendedObserver interface {
	Observer

	// OnStart is called once the schedule has entered its first green
	OnStart(state ScheduleState)

	// OnDirectionComplete is called when a direction finishes its yellow phase
	OnDirectionComplete(direction Direction, state ScheduleState)

	// OnComplete is called with the final report after the last yellow phase
	OnComplete(report *Report)

	// OnError is called when an error occurs during processing
	OnError(err error)
}

// BaseObserver provides a default implementation with no-op methods
type BaseObserver struct{}

// OnTick implements the required Observer method
func (o *BaseObserver) OnTick(event TickEvent) {}

// OnPhaseChange implements the required Observer method
func (o *BaseObserver) OnPhaseChange(from Step, to Step) {}

// OnStart implements the optional ExtendedObserver method
func (o *BaseObserver) OnStart(state ScheduleState) {}

// OnDirectionComplete implements the optional ExtendedObserver method
func (o *BaseObserver) OnDirectionComplete(direction Direction, state ScheduleState) {}

// OnComplete implements the optional ExtendedObserver method
func (o *BaseObserver) OnComplete(report *Report) {}

// OnError implements the optional ExtendedObserver method
func (o *BaseObserver) OnError(err error) {}

// ObserverManager manages a collection of observers
type ObserverManager struct {
	observers []Observer
	mutex     sync.RWMutex
}

// NewObserverManager creates a new observer manager
func NewObserverManager() *ObserverManager {
	return &ObserverManager{
		observers: make([]Observer, 0),
	}
}

// AddObserver adds an observer to the manager
func (om *ObserverManager) AddObserver(observer Observer) {
	om.mutex.Lock()
	defer om.mutex.Unlock()
	om.observers = append(om.observers, observer)
}

// RemoveObserver removes an observer from the manager
func (om *ObserverManager) RemoveObserver(observer Observer) {
	om.mutex.Lock()
	defer om.mutex.Unlock()
	for i, obs := range om.observers {
		if obs == observer {
			om.observers = append(om.observers[:i], om.observers[i+1:]...)
			break
		}
	}
}

// Len returns the number of registered observers
func (om *ObserverManager) Len() int {
	om.mutex.RLock()
	defer om.mutex.RUnlock()
	return len(om.observers)
}

func (om *ObserverManager) snapshot() []Observer {
	om.mutex.RLock()
	defer om.mutex.RUnlock()
	observers := make([]Observer, len(om.observers))
	copy(observers, om.observers)
	return observers
}

// each calls fn for every observer. A panicking observer is reported to
// itself through OnError and never interrupts the run.
func (om *ObserverManager) each(hook string, fn func(Observer)) {
	observers := om.snapshot()

	for _, observer := range observers {
		func() {
			defer func() {
				if r := recover(); r != nil {
					if extObs, ok := observer.(ExtendedObserver); ok {
						func() {
							defer func() { recover() }()
							extObs.OnError(fmt.Errorf("observer panic in %s: %v", hook, r))
						}()
					}
				}
			}()
			fn(observer)
		}()
	}
}

// eachExtended is each restricted to observers implementing ExtendedObserver
func (om *ObserverManager) eachExtended(hook string, fn func(ExtendedObserver)) {
	om.each(hook, func(observer Observer) {
		if extObs, ok := observer.(ExtendedObserver); ok {
			fn(extObs)
		}
	})
}

// NotifyTick notifies all observers of a tick
func (om *ObserverManager) NotifyTick(event TickEvent) {
	om.each("OnTick", func(o Observer) { o.OnTick(event) })
}

// NotifyPhaseChange notifies all observers of a step change
func (om *ObserverManager) NotifyPhaseChange(from Step, to Step) {
	om.each("OnPhaseChange", func(o Observer) { o.OnPhaseChange(from, to) })
}

// NotifyStart notifies all observers that the run has started
func (om *ObserverManager) NotifyStart(state ScheduleState) {
	om.eachExtended("OnStart", func(o ExtendedObserver) { o.OnStart(state) })
}

// NotifyDirectionComplete notifies all observers that a direction was serviced
func (om *ObserverManager) NotifyDirectionComplete(direction Direction, state ScheduleState) {
	om.eachExtended("OnDirectionComplete", func(o ExtendedObserver) { o.OnDirectionComplete(direction, state) })
}

// NotifyComplete notifies all observers of the final report
func (om *ObserverManager) NotifyComplete(report *Report) {
	om.eachExtended("OnComplete", func(o ExtendedObserver) { o.OnComplete(report) })
}

// NotifyError notifies all observers of errors
func (om *ObserverManager) NotifyError(err error) {
	observers := om.snapshot()

	for _, observer := range observers {
		if extObs, ok := observer.(ExtendedObserver); ok {
			func() {
				defer func() { recover() }()
				extObs.OnError(err)
			}()
		}
	}
}
