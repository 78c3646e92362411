package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/anggasct/trafficflow"
	"github.com/anggasct/trafficflow/pkg/observers"
	"github.com/anggasct/trafficflow/visualization"
)

// consoleObserver prints the signal board and timer line of a running schedule
type consoleObserver struct {
	trafficflow.BaseObserver
	out       io.Writer
	scheduler *trafficflow.Scheduler
}

func newConsoleObserver(out io.Writer, s *trafficflow.Scheduler) *consoleObserver {
	return &consoleObserver{out: out, scheduler: s}
}

func (o *consoleObserver) OnStart(state trafficflow.ScheduleState) {
	fmt.Fprintln(o.out, visualization.FormatSignals(state))
}

func (o *consoleObserver) OnTick(event trafficflow.TickEvent) {
	fmt.Fprintln(o.out, visualization.FormatTick(event))
}

func (o *consoleObserver) OnPhaseChange(from trafficflow.Step, to trafficflow.Step) {
	if to.Complete {
		return
	}
	fmt.Fprintln(o.out, visualization.FormatSignals(o.scheduler.State()))
}

func printReport(out io.Writer, report *trafficflow.Report, summary observers.Summary) {
	fmt.Fprintln(out, "Simulation Complete! All directions have completed their green and yellow phases.")
	fmt.Fprintf(out, "Total Vehicles Detected: %d\n", report.TotalVehicles)
	fmt.Fprintf(out, "Busiest Direction: %s with %d vehicles\n\n", report.Busiest, report.BusiestCount)

	var share strings.Builder
	for _, d := range trafficflow.Directions() {
		fmt.Fprintf(&share, "%s %.1f%%  ", d, report.Share[d])
	}
	fmt.Fprintf(out, "Traffic Share: %s\n\n", strings.TrimSpace(share.String()))

	fmt.Fprint(out, visualization.FormatTable("Assigned Green Time (sec)", report.GreenTable()))
	fmt.Fprintln(out)
	fmt.Fprint(out, visualization.FormatTable("Estimated Waiting Time (sec)", report.WaitTable()))
	fmt.Fprintf(out, "\nCycle: %ds over %d ticks, green mean %.1fs stddev %.1fs\n",
		report.CycleTime, report.Ticks, summary.MeanGreen, summary.StdDevGreen)
}
