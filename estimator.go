package trafficflow

import "github.com/samber/lo"

// EstimateWaits projects a waiting time for every direction from a finished
// schedule. The busiest direction waits 0. Every other direction d waits the
// projected green plus yellow of each direction that is neither d nor the
// busiest one, regardless of where d sits in the ranked order, using
// ProjectionPolicy (min(5 + count, 30) + 3).
func EstimateWaits(ranked []RankedEntry, counts VehicleCounts) map[Direction]int {
	projection := ProjectionPolicy()
	waits := make(map[Direction]int, len(canonicalOrder))

	busiest, ok := Busiest(ranked)
	if !ok {
		return waits
	}

	for _, d := range canonicalOrder {
		if d == busiest.Direction {
			waits[d] = 0
			continue
		}
		preceding := lo.Filter(ranked, func(e RankedEntry, _ int) bool {
			return e.Direction != d && e.Direction != busiest.Direction
		})
		waits[d] = lo.SumBy(preceding, func(e RankedEntry) int {
			return projection.PhaseCost(counts[e.Direction])
		})
	}
	return waits
}
