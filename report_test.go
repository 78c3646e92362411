package trafficflow

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReport_Scenario(t *testing.T) {
	state, err := NewSchedule(ScenarioCounts(), DefaultTimingPolicy())
	require.NoError(t, err)
	final, _ := DrainSchedule(t, state)

	report, err := NewReport(final)
	require.NoError(t, err)

	assert.Equal(t, final.RunID(), report.RunID)
	assert.Equal(t, North, report.Busiest)
	assert.Equal(t, 10, report.BusiestCount)
	assert.Equal(t, 20, report.TotalVehicles)
	assert.Equal(t, 3, report.YellowTime)
	assert.Equal(t, 42, report.CycleTime)
	assert.Equal(t, report.CycleTime, report.Ticks)
	assert.Equal(t, map[Direction]int{North: 10, West: 8, East: 7, South: 5}, report.GreenTimes)
	assert.Equal(t, 0, report.WaitingTimes[North])
	assert.InDelta(t, 50.0, report.Share[North], 1e-9)

	assert.Equal(t, []TableRow{
		{Direction: North, Seconds: 10},
		{Direction: West, Seconds: 8},
		{Direction: East, Seconds: 7},
		{Direction: South, Seconds: 5},
	}, report.GreenTable())
	assert.Equal(t, []TableRow{
		{Direction: North, Seconds: 0},
		{Direction: East, Seconds: 22},
		{Direction: South, Seconds: 26},
		{Direction: West, Seconds: 20},
	}, report.WaitTable())
}

func TestNewReport_BeforeComplete(t *testing.T) {
	_, err := NewReport(ScheduleState{})
	require.Error(t, err)
	assert.True(t, IsInvalidStateError(err))
	assert.Equal(t, ErrCodeNotStarted, GetErrorCode(err))

	state, err := NewSchedule(ScenarioCounts(), DefaultTimingPolicy())
	require.NoError(t, err)
	_, err = NewReport(state)
	require.Error(t, err)
	assert.True(t, IsInvalidStateError(err))
	assert.Equal(t, ErrCodeNotComplete, GetErrorCode(err))
}

func TestReport_JSON(t *testing.T) {
	state, err := NewSchedule(UniformCounts(2), DefaultTimingPolicy())
	require.NoError(t, err)
	final, _ := DrainSchedule(t, state)
	report, err := NewReport(final)
	require.NoError(t, err)

	data, err := json.Marshal(report)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "North", decoded["busiest"])
	assert.Equal(t, float64(36), decoded["cycle_time"])
	greens := decoded["green_times"].(map[string]any)
	assert.Equal(t, float64(6), greens["West"])
}
