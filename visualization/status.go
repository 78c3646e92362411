package visualization

import (
	"fmt"
	"strings"

	"github.com/anggasct/trafficflow"
)

// FormatTick renders the timer line shown while a phase counts down
func FormatTick(event trafficflow.TickEvent) string {
	return fmt.Sprintf("%s light for %s - %d sec", event.Phase, event.Direction, event.Remaining)
}

// FormatSignals renders one column per direction in canonical order, e.g.
// "North: GREEN (10) | East: RED (4) | ..."
func FormatSignals(state trafficflow.ScheduleState) string {
	signals := state.Signals()
	counts := state.Counts()

	parts := make([]string, 0, len(trafficflow.Directions()))
	for _, d := range trafficflow.Directions() {
		signal := signals[d]
		label := signal.String()
		if signal == trafficflow.SignalRed && state.IsCompleted(d) {
			label += " done"
		}
		parts = append(parts, fmt.Sprintf("%s: %s (%d)", d, label, counts[d]))
	}
	return strings.Join(parts, " | ")
}

// FormatTable renders a per-direction table with a header row
func FormatTable(header string, rows []trafficflow.TableRow) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%-10s %s\n", "Direction", header))
	for _, r := range rows {
		b.WriteString(fmt.Sprintf("%-10s %d\n", r.Direction, r.Seconds))
	}
	return b.String()
}
