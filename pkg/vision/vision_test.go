package vision_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/anggasct/trafficflow"
	"github.com/anggasct/trafficflow/pkg/vision"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectStatic(t *testing.T) {
	counts, err := vision.Collect(context.Background(), vision.Static(trafficflow.ScenarioCounts()))
	require.NoError(t, err)
	assert.Equal(t, trafficflow.ScenarioCounts(), counts)
}

func TestCollectQueriesEveryDirection(t *testing.T) {
	var calls atomic.Int32
	counter := vision.FuncCounter(func(ctx context.Context, d trafficflow.Direction) (int, error) {
		calls.Add(1)
		return int(d) * 3, nil
	})

	counts, err := vision.Collect(context.Background(), counter)
	require.NoError(t, err)
	assert.Equal(t, int32(4), calls.Load())
	assert.Equal(t, trafficflow.VehicleCounts{
		trafficflow.North: 0,
		trafficflow.East:  3,
		trafficflow.South: 6,
		trafficflow.West:  9,
	}, counts)
}

func TestCollectWrapsCounterError(t *testing.T) {
	camera := errors.New("camera offline")
	counter := vision.FuncCounter(func(ctx context.Context, d trafficflow.Direction) (int, error) {
		if d == trafficflow.South {
			return 0, camera
		}
		return 1, nil
	})

	_, err := vision.Collect(context.Background(), counter)
	require.Error(t, err)
	assert.ErrorIs(t, err, camera)
	assert.Contains(t, err.Error(), "count South")
}

func TestCollectMissingStaticCount(t *testing.T) {
	_, err := vision.Collect(context.Background(), vision.Static{trafficflow.North: 1})
	assert.Error(t, err)
}

func TestCollectRejectsNegativeCounts(t *testing.T) {
	counts := trafficflow.UniformCounts(2)
	counts[trafficflow.West] = -3

	_, err := vision.Collect(context.Background(), vision.Static(counts))
	require.Error(t, err)
	assert.True(t, trafficflow.IsInvalidInputError(err))
}

func TestCollectCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	counter := vision.FuncCounter(func(ctx context.Context, d trafficflow.Direction) (int, error) {
		<-ctx.Done()
		return 0, ctx.Err()
	})
	_, err := vision.Collect(ctx, counter)
	assert.ErrorIs(t, err, context.Canceled)
}
