package trafficflow

import (
	"sort"

	"github.com/samber/lo"
)

// RankedEntry pairs a direction with its observed vehicle count
type RankedEntry struct {
	Direction Direction `json:"direction"`
	Count     int       `json:"count"`
}

// Rank orders the directions by vehicle count, busiest first.
// Equal counts keep the canonical North, East, South, West order.
// Counts must already be validated.
func Rank(counts VehicleCounts) []RankedEntry {
	ranked := lo.Map(canonicalOrder[:], func(d Direction, _ int) RankedEntry {
		return RankedEntry{Direction: d, Count: counts[d]}
	})
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	return ranked
}

// Busiest returns the first entry of a ranked sequence
func Busiest(ranked []RankedEntry) (RankedEntry, bool) {
	if len(ranked) == 0 {
		return RankedEntry{}, false
	}
	return ranked[0], true
}
