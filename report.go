package trafficflow

import (
	"maps"
	"slices"

	"github.com/samber/lo"
)

// Report is the final snapshot handed to presentation once a run completes
type Report struct {
	RunID         string                `json:"run_id"`
	RankedOrder   []RankedEntry         `json:"ranked_order"`
	Counts        VehicleCounts         `json:"counts"`
	GreenTimes    map[Direction]int     `json:"green_times"`
	WaitingTimes  map[Direction]int     `json:"waiting_times"`
	Share         map[Direction]float64 `json:"share"`
	TotalVehicles int                   `json:"total_vehicles"`
	Busiest       Direction             `json:"busiest"`
	BusiestCount  int                   `json:"busiest_count"`
	YellowTime    int                   `json:"yellow_time"`
	CycleTime     int                   `json:"cycle_time"`
	Ticks         int                   `json:"ticks"`
}

// TableRow is one line of a per-direction table
type TableRow struct {
	Direction Direction `json:"direction"`
	Seconds   int       `json:"seconds"`
}

// NewReport derives the final metrics from a completed state
func NewReport(s ScheduleState) (*Report, error) {
	switch s.status {
	case StatusIdle:
		return nil, NewNotStartedError("Report")
	case StatusRunning:
		return nil, NewNotCompleteError("Report")
	}

	policy := s.policy
	busiest, _ := Busiest(s.ranked)
	greens := lo.SliceToMap(s.ranked, func(e RankedEntry) (Direction, int) {
		return e.Direction, policy.GreenDuration(e.Count)
	})

	return &Report{
		RunID:         s.runID,
		RankedOrder:   s.Ranked(),
		Counts:        s.Counts(),
		GreenTimes:    greens,
		WaitingTimes:  EstimateWaits(s.ranked, s.counts),
		Share:         s.counts.Share(),
		TotalVehicles: s.counts.Total(),
		Busiest:       busiest.Direction,
		BusiestCount:  busiest.Count,
		YellowTime:    policy.YellowDuration(),
		CycleTime:     policy.CycleTime(s.ranked),
		Ticks:         s.ticks,
	}, nil
}

// Clone returns a deep copy of the report
func (r *Report) Clone() *Report {
	if r == nil {
		return nil
	}
	c := *r
	c.RankedOrder = slices.Clone(r.RankedOrder)
	c.Counts = r.Counts.Clone()
	c.GreenTimes = maps.Clone(r.GreenTimes)
	c.WaitingTimes = maps.Clone(r.WaitingTimes)
	c.Share = maps.Clone(r.Share)
	return &c
}

// GreenTable lists assigned green time in service order
func (r *Report) GreenTable() []TableRow {
	return lo.Map(r.RankedOrder, func(e RankedEntry, _ int) TableRow {
		return TableRow{Direction: e.Direction, Seconds: r.GreenTimes[e.Direction]}
	})
}

// WaitTable lists projected waiting time in canonical order
func (r *Report) WaitTable() []TableRow {
	return lo.Map(Directions(), func(d Direction, _ int) TableRow {
		return TableRow{Direction: d, Seconds: r.WaitingTimes[d]}
	})
}
