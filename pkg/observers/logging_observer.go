// Package observers provides observers for monitoring schedule runs
package observers

import (
	"github.com/anggasct/trafficflow"
	"github.com/sirupsen/logrus"
)

// LoggingObserver logs schedule events through logrus.
// Ticks are logged at debug, phase changes and completion at info.
type LoggingObserver struct {
	trafficflow.BaseObserver
	log *logrus.Entry
}

// NewLoggingObserver creates a logging observer writing through entry.
// A nil entry logs with the "observer" module field.
func NewLoggingObserver(entry *logrus.Entry) *LoggingObserver {
	if entry == nil {
		entry = logrus.WithField("module", "observer")
	}
	return &LoggingObserver{log: entry}
}

// OnStart logs the service order
func (o *LoggingObserver) OnStart(state trafficflow.ScheduleState) {
	o.log.WithField("run", state.RunID()).
		Infof("schedule started: order=%v cycle=%ds", state.Ranked(), state.Policy().CycleTime(state.Ranked()))
}

// OnTick logs the timer line for the active direction
func (o *LoggingObserver) OnTick(event trafficflow.TickEvent) {
	o.log.WithFields(logrus.Fields{
		"run": event.RunID,
		"seq": event.Seq,
	}).Debugf("%s light for %s - %d sec", event.Phase, event.Direction, event.Remaining)
}

// OnPhaseChange logs transitions
func (o *LoggingObserver) OnPhaseChange(from trafficflow.Step, to trafficflow.Step) {
	o.log.Infof("transition: %s -> %s", from, to)
}

// OnDirectionComplete logs a serviced direction
func (o *LoggingObserver) OnDirectionComplete(direction trafficflow.Direction, state trafficflow.ScheduleState) {
	o.log.Infof("%s serviced (%d/%d)", direction, len(state.Completed()), len(trafficflow.Directions()))
}

// OnComplete logs the final summary
func (o *LoggingObserver) OnComplete(report *trafficflow.Report) {
	o.log.WithField("run", report.RunID).
		Infof("simulation complete: busiest=%s (%d vehicles) total=%d cycle=%ds",
			report.Busiest, report.BusiestCount, report.TotalVehicles, report.CycleTime)
}

// OnError logs errors
func (o *LoggingObserver) OnError(err error) {
	o.log.Errorf("error: %v", err)
}
