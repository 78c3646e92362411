package observers

import (
	"sync"

	"github.com/anggasct/trafficflow"
	"gonum.org/v1/gonum/stat"
)

// MetricsObserver collects metrics about schedule execution
type MetricsObserver struct {
	trafficflow.BaseObserver
	greenSeconds  map[trafficflow.Direction]int
	yellowSeconds map[trafficflow.Direction]int
	phaseChanges  map[string]int
	ticks         int
	completions   int
	errorCount    int
	mutex         sync.RWMutex
}

// Summary describes the distribution of green time across directions
type Summary struct {
	Ticks       int     `json:"ticks"`
	MeanGreen   float64 `json:"mean_green"`
	StdDevGreen float64 `json:"stddev_green"`
	MinGreen    float64 `json:"min_green"`
	MaxGreen    float64 `json:"max_green"`
}

// NewMetricsObserver creates a new metrics observer
func NewMetricsObserver() *MetricsObserver {
	return &MetricsObserver{
		greenSeconds:  make(map[trafficflow.Direction]int),
		yellowSeconds: make(map[trafficflow.Direction]int),
		phaseChanges:  make(map[string]int),
	}
}

// OnTick records the second against the active direction and phase
func (o *MetricsObserver) OnTick(event trafficflow.TickEvent) {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	o.ticks++
	if event.Phase == trafficflow.PhaseGreen {
		o.greenSeconds[event.Direction]++
	} else {
		o.yellowSeconds[event.Direction]++
	}
}

// OnPhaseChange records transition metrics
func (o *MetricsObserver) OnPhaseChange(from trafficflow.Step, to trafficflow.Step) {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	o.phaseChanges[from.String()+"->"+to.String()]++
}

// OnComplete counts completed runs
func (o *MetricsObserver) OnComplete(report *trafficflow.Report) {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	o.completions++
}

// OnError records error metrics
func (o *MetricsObserver) OnError(err error) {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	o.errorCount++
}

// GetGreenSeconds returns the observed green seconds per direction
func (o *MetricsObserver) GetGreenSeconds() map[trafficflow.Direction]int {
	o.mutex.RLock()
	defer o.mutex.RUnlock()

	result := make(map[trafficflow.Direction]int)
	for d, n := range o.greenSeconds {
		result[d] = n
	}
	return result
}

// GetYellowSeconds returns the observed yellow seconds per direction
func (o *MetricsObserver) GetYellowSeconds() map[trafficflow.Direction]int {
	o.mutex.RLock()
	defer o.mutex.RUnlock()

	result := make(map[trafficflow.Direction]int)
	for d, n := range o.yellowSeconds {
		result[d] = n
	}
	return result
}

// GetPhaseChangeCounts returns the number of times each transition occurred
func (o *MetricsObserver) GetPhaseChangeCounts() map[string]int {
	o.mutex.RLock()
	defer o.mutex.RUnlock()

	result := make(map[string]int)
	for transition, count := range o.phaseChanges {
		result[transition] = count
	}
	return result
}

// GetTickCount returns the number of observed ticks
func (o *MetricsObserver) GetTickCount() int {
	o.mutex.RLock()
	defer o.mutex.RUnlock()
	return o.ticks
}

// GetCompletionCount returns the number of completed runs
func (o *MetricsObserver) GetCompletionCount() int {
	o.mutex.RLock()
	defer o.mutex.RUnlock()
	return o.completions
}

// GetErrorCount returns the number of errors
func (o *MetricsObserver) GetErrorCount() int {
	o.mutex.RLock()
	defer o.mutex.RUnlock()
	return o.errorCount
}

// Summary computes green-time statistics over every direction in canonical
// order; directions never seen count as zero seconds
func (o *MetricsObserver) Summary() Summary {
	o.mutex.RLock()
	defer o.mutex.RUnlock()

	greens := make([]float64, 0, len(trafficflow.Directions()))
	for _, d := range trafficflow.Directions() {
		greens = append(greens, float64(o.greenSeconds[d]))
	}

	summary := Summary{Ticks: o.ticks}
	if len(greens) == 0 {
		return summary
	}
	summary.MeanGreen, summary.StdDevGreen = stat.MeanStdDev(greens, nil)
	summary.MinGreen, summary.MaxGreen = greens[0], greens[0]
	for _, g := range greens[1:] {
		summary.MinGreen = min(summary.MinGreen, g)
		summary.MaxGreen = max(summary.MaxGreen, g)
	}
	return summary
}

// Reset resets all metrics
func (o *MetricsObserver) Reset() {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	o.greenSeconds = make(map[trafficflow.Direction]int)
	o.yellowSeconds = make(map[trafficflow.Direction]int)
	o.phaseChanges = make(map[string]int)
	o.ticks = 0
	o.completions = 0
	o.errorCount = 0
}
