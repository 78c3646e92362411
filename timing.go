package trafficflow

import (
	"fmt"

	"github.com/samber/lo"
)

// TimingPolicy maps a vehicle count to signal durations, in seconds
type TimingPolicy struct {
	BaseTime       int `json:"base_time" yaml:"base_time"`
	PerVehicleTime int `json:"per_vehicle_time" yaml:"per_vehicle_time"`
	MaxTime        int `json:"max_time" yaml:"max_time"`
	YellowTime     int `json:"yellow_time" yaml:"yellow_time"`
	// CountDivisor dampens the count before it is scaled (integer division)
	CountDivisor int `json:"count_divisor" yaml:"count_divisor"`
}

// DefaultTimingPolicy is the policy used to drive the signal:
// green = min(5 + floor(count/2), 25), yellow = 3
func DefaultTimingPolicy() TimingPolicy {
	return TimingPolicy{
		BaseTime:       5,
		PerVehicleTime: 1,
		MaxTime:        25,
		YellowTime:     3,
		CountDivisor:   2,
	}
}

// ProjectionPolicy is the variant used only for waiting-time estimates:
// green = min(5 + count, 30), yellow = 3
func ProjectionPolicy() TimingPolicy {
	return TimingPolicy{
		BaseTime:       5,
		PerVehicleTime: 1,
		MaxTime:        30,
		YellowTime:     3,
		CountDivisor:   1,
	}
}

// GreenDuration returns the bounded green time for a count
func (p TimingPolicy) GreenDuration(count int) int {
	if count < 0 {
		count = 0
	}
	divisor := p.CountDivisor
	if divisor <= 0 {
		divisor = 1
	}
	return min(p.BaseTime+(count/divisor)*p.PerVehicleTime, p.MaxTime)
}

// YellowDuration returns the fixed yellow time
func (p TimingPolicy) YellowDuration() int {
	return p.YellowTime
}

// PhaseCost is the green plus yellow time spent servicing a count
func (p TimingPolicy) PhaseCost(count int) int {
	return p.GreenDuration(count) + p.YellowDuration()
}

// CycleTime is the number of ticks needed to service every ranked entry
func (p TimingPolicy) CycleTime(ranked []RankedEntry) int {
	return lo.SumBy(ranked, func(e RankedEntry) int {
		return p.PhaseCost(e.Count)
	})
}

// Validate rejects policies that could produce empty or unbounded phases
func (p TimingPolicy) Validate() error {
	switch {
	case p.BaseTime <= 0:
		return NewConfigurationError("TimingPolicy", fmt.Sprintf("base time must be positive, got %d", p.BaseTime))
	case p.PerVehicleTime < 0:
		return NewConfigurationError("TimingPolicy", fmt.Sprintf("per-vehicle time must not be negative, got %d", p.PerVehicleTime))
	case p.MaxTime < p.BaseTime:
		return NewConfigurationError("TimingPolicy", fmt.Sprintf("max time %d is below base time %d", p.MaxTime, p.BaseTime))
	case p.YellowTime <= 0:
		return NewConfigurationError("TimingPolicy", fmt.Sprintf("yellow time must be positive, got %d", p.YellowTime))
	case p.CountDivisor <= 0:
		return NewConfigurationError("TimingPolicy", fmt.Sprintf("count divisor must be positive, got %d", p.CountDivisor))
	}
	return nil
}
