package trafficflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTickEventIdentity(t *testing.T) {
	state, err := NewSchedule(ScenarioCounts(), DefaultTimingPolicy())
	require.NoError(t, err)

	_, ticks := DrainSchedule(t, state)
	require.Len(t, ticks, 42)

	seen := make(map[string]bool, len(ticks))
	for i, tick := range ticks {
		assert.Equal(t, i+1, tick.Seq)
		assert.Equal(t, state.RunID(), tick.RunID)
		assert.NotEmpty(t, tick.ID)
		assert.False(t, seen[tick.ID], "duplicate event ID %s", tick.ID)
		seen[tick.ID] = true
	}
}

func TestTickEventFinal(t *testing.T) {
	state, err := NewSchedule(ScenarioCounts(), DefaultTimingPolicy())
	require.NoError(t, err)

	_, ticks := DrainSchedule(t, state)
	for _, tick := range ticks[:len(ticks)-1] {
		assert.False(t, tick.IsFinal())
	}

	last := ticks[len(ticks)-1]
	assert.True(t, last.IsFinal())
	assert.True(t, last.Completed)
	assert.Equal(t, Step{Direction: South, Phase: PhaseYellow}, last.Step())
	assert.Equal(t, 1, last.Remaining)
}

func TestTickEventCountsAreCopies(t *testing.T) {
	state, err := NewSchedule(ScenarioCounts(), DefaultTimingPolicy())
	require.NoError(t, err)

	_, event, err := Advance(state)
	require.NoError(t, err)
	event.Counts[North] = 99
	assert.Equal(t, 10, state.Counts()[North])
}
