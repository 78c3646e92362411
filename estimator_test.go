package trafficflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimateWaits_Scenario(t *testing.T) {
	counts := ScenarioCounts()
	waits := EstimateWaits(Rank(counts), counts)

	// projected cost per direction: North 18, West 14, East 12, South 8
	assert.Equal(t, map[Direction]int{
		North: 0,
		East:  14 + 8,
		South: 14 + 12,
		West:  12 + 8,
	}, waits)
}

func TestEstimateWaits_Uniform(t *testing.T) {
	counts := UniformCounts(2)
	waits := EstimateWaits(Rank(counts), counts)

	assert.Equal(t, 0, waits[North])
	for _, d := range []Direction{East, South, West} {
		assert.Equal(t, 20, waits[d], d.String())
	}
}

func TestEstimateWaits_UsesProjectionCap(t *testing.T) {
	counts := VehicleCounts{North: 1000, East: 500, South: 0, West: 0}
	waits := EstimateWaits(Rank(counts), counts)

	assert.Equal(t, 0, waits[North])
	assert.Equal(t, 8+8, waits[East])
	assert.Equal(t, 33+8, waits[South])
	assert.Equal(t, 33+8, waits[West])
}

func TestEstimateWaits_BusiestAlwaysZero(t *testing.T) {
	for _, counts := range []VehicleCounts{
		ScenarioCounts(),
		UniformCounts(0),
		{North: 0, East: 0, South: 9, West: 9},
		{North: 1, East: 2, South: 3, West: 4},
	} {
		ranked := Rank(counts)
		waits := EstimateWaits(ranked, counts)
		assert.Len(t, waits, 4)
		assert.Zero(t, waits[ranked[0].Direction], "counts=%v", counts)
		for _, w := range waits {
			assert.GreaterOrEqual(t, w, 0)
		}
	}
}

func TestEstimateWaits_EmptyRanking(t *testing.T) {
	assert.Empty(t, EstimateWaits(nil, nil))
}
