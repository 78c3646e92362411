package trafficflow

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/anggasct/trafficflow/pkg/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchedulerBuilder_Build(t *testing.T) {
	s, err := NewScheduler().
		WithCount(North, 10).
		WithCount(East, 4).
		WithCount(South, 0).
		WithCount(West, 6).
		WithRunID("fixed").
		Build()
	require.NoError(t, err)

	assert.Equal(t, StatusIdle, s.Status())
	assert.Equal(t, "fixed", s.RunID())
	assert.Equal(t, DefaultTimingPolicy(), s.Policy())
}

func TestSchedulerBuilder_RejectsInvalidInput(t *testing.T) {
	_, err := NewScheduler().WithCounts(VehicleCounts{North: 1, East: 2}).Build()
	require.Error(t, err)
	assert.Equal(t, ErrCodeDirectionCount, GetErrorCode(err))

	_, err = NewScheduler().WithCounts(UniformCounts(1)).WithCount(West, -3).Build()
	require.Error(t, err)
	assert.Equal(t, ErrCodeNegativeCount, GetErrorCode(err))

	_, err = NewScheduler().WithCounts(UniformCounts(1)).WithPolicy(TimingPolicy{}).Build()
	require.Error(t, err)
	assert.True(t, IsConfigurationError(err))
}

func TestScheduler_Start(t *testing.T) {
	observer := NewTestObserver()
	s := CreateScenarioScheduler(t, observer)

	require.NoError(t, s.Start())
	assert.Equal(t, StatusRunning, s.Status())
	AssertStep(t, s.State(), Step{Direction: North, Phase: PhaseGreen})
	assert.Len(t, observer.Starts, 1)

	err := s.Start()
	require.Error(t, err)
	assert.Equal(t, ErrCodeAlreadyStarted, GetErrorCode(err))
}

func TestScheduler_TickBeforeStart(t *testing.T) {
	observer := NewTestObserver()
	s := CreateScenarioScheduler(t, observer)

	_, err := s.Tick()
	require.Error(t, err)
	assert.True(t, IsInvalidStateError(err))
	assert.Equal(t, 1, observer.ErrorCount())
}

func TestScheduler_TickToCompletion(t *testing.T) {
	observer := NewTestObserver()
	s := CreateScenarioScheduler(t, observer)
	require.NoError(t, s.Start())

	for s.Status() == StatusRunning {
		_, err := s.Tick()
		require.NoError(t, err)
	}

	assert.Equal(t, 42, observer.TickCount())
	assert.Equal(t, 8, observer.PhaseChangeCount())
	assert.Equal(t, []Direction{North, West, East, South}, observer.Serviced)
	require.Len(t, observer.Reports, 1)
	assert.Equal(t, North, observer.Reports[0].Busiest)

	report, err := s.Report()
	require.NoError(t, err)
	assert.Same(t, observer.Reports[0], report)

	_, err = s.Tick()
	require.Error(t, err)
	assert.Equal(t, ErrCodeAlreadyComplete, GetErrorCode(err))
}

func TestScheduler_ReportBeforeComplete(t *testing.T) {
	s := CreateScenarioScheduler(t)
	_, err := s.Report()
	assert.True(t, IsInvalidStateError(err))

	require.NoError(t, s.Start())
	_, err = s.Tick()
	require.NoError(t, err)
	_, err = s.Report()
	assert.True(t, IsInvalidStateError(err))
}

func TestScheduler_RunWithInstantClock(t *testing.T) {
	observer := NewTestObserver()
	s := CreateScenarioScheduler(t, observer)
	clk := clock.NewInstant()

	report, err := s.Run(context.Background(), clk)
	require.NoError(t, err)

	assert.Equal(t, int64(42), clk.Elapsed())
	assert.Equal(t, 42, report.Ticks)
	assert.Equal(t, StatusComplete, s.Status())
	assert.Equal(t, 42, observer.TickCount())

	_, err = s.Run(context.Background(), clk)
	assert.Equal(t, ErrCodeAlreadyComplete, GetErrorCode(err))
}

func TestScheduler_RunCancelled(t *testing.T) {
	s := CreateScenarioScheduler(t)
	clk := clock.NewManual()
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		_, err := s.Run(ctx, clk)
		done <- err
	}()

	for i := 0; i < 5; i++ {
		require.True(t, clk.Step(context.Background()))
	}
	cancel()

	select {
	case err := <-done:
		assert.True(t, errors.Is(err, context.Canceled))
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancellation")
	}

	assert.Equal(t, StatusIdle, s.Status())
	_, err := s.Report()
	assert.True(t, IsInvalidStateError(err))
}

func TestScheduler_RunRejectsSecondDriver(t *testing.T) {
	s := CreateScenarioScheduler(t)
	clk := clock.NewManual()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		_, err := s.Run(ctx, clk)
		done <- err
	}()
	require.True(t, clk.Step(context.Background()))

	second := clock.NewInstant()
	_, err := s.Run(context.Background(), second)
	require.Error(t, err)
	assert.Equal(t, ErrCodeAlreadyStarted, GetErrorCode(err))
	assert.Equal(t, int64(0), second.Elapsed())
	assert.Eventually(t, func() bool { return s.State().Ticks() == 1 }, time.Second, time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.True(t, errors.Is(err, context.Canceled))
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancellation")
	}

	report, err := s.Run(context.Background(), clock.NewInstant())
	require.NoError(t, err)
	assert.Equal(t, 42, report.Ticks)
}

func TestScheduler_ReportIsCopy(t *testing.T) {
	observer := NewTestObserver()
	s := CreateScenarioScheduler(t, observer)

	report, err := s.Run(context.Background(), clock.NewInstant())
	require.NoError(t, err)
	report.GreenTimes[North] = 99
	report.WaitingTimes[East] = 99
	report.RankedOrder[0] = RankedEntry{Direction: South, Count: 1}

	require.Len(t, observer.Reports, 1)
	observer.Reports[0].Share[North] = 0

	again, err := s.Report()
	require.NoError(t, err)
	assert.Equal(t, 10, again.GreenTimes[North])
	assert.Equal(t, 22, again.WaitingTimes[East])
	assert.Equal(t, RankedEntry{Direction: North, Count: 10}, again.RankedOrder[0])
	assert.Equal(t, 50.0, again.Share[North])
}

func TestScheduler_ReportWhileRunning(t *testing.T) {
	s := CreateScenarioScheduler(t)
	require.NoError(t, s.Start())
	_, err := s.Tick()
	require.NoError(t, err)

	_, err = s.Report()
	assert.Equal(t, ErrCodeNotComplete, GetErrorCode(err))
}

func TestScheduler_ResetAndRerun(t *testing.T) {
	s := CreateScenarioScheduler(t)
	first, err := s.Run(context.Background(), clock.NewInstant())
	require.NoError(t, err)

	s.Reset()
	assert.Equal(t, StatusIdle, s.Status())

	second, err := s.Run(context.Background(), clock.NewInstant())
	require.NoError(t, err)
	assert.Equal(t, first.GreenTimes, second.GreenTimes)
	assert.Equal(t, first.WaitingTimes, second.WaitingTimes)
}

func TestScheduler_ConcurrentReads(t *testing.T) {
	s := CreateScenarioScheduler(t)
	require.NoError(t, s.Start())

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			state := s.State()
			if state.Status() == StatusRunning {
				AssertSingleActive(t, state)
			}
		}
	}()

	for s.Status() == StatusRunning {
		_, err := s.Tick()
		require.NoError(t, err)
	}
	wg.Wait()
}

func TestScheduler_MarshalJSON(t *testing.T) {
	s := CreateScenarioScheduler(t)
	require.NoError(t, s.Start())

	data, err := json.Marshal(s)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	snapshot := decoded["snapshot"].(map[string]any)
	assert.Equal(t, "running", snapshot["status"])
	assert.Equal(t, "North", snapshot["active_direction"])
	assert.Equal(t, "Green", snapshot["phase"])
	assert.NotContains(t, decoded, "report")
}
