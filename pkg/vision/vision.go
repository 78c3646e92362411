// Package vision supplies vehicle counts per approach. Detection itself
// lives behind the Counter interface; this package only gathers results.
package vision

import (
	"context"
	"fmt"
	"sync"

	"github.com/anggasct/trafficflow"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

var log = logrus.WithField("module", "vision")

// Counter reports how many vehicles are waiting on one approach
type Counter interface {
	Count(ctx context.Context, direction trafficflow.Direction) (int, error)
}

// Static returns fixed counts. Missing directions count as an error.
type Static trafficflow.VehicleCounts

// Count implements Counter
func (s Static) Count(ctx context.Context, direction trafficflow.Direction) (int, error) {
	n, ok := s[direction]
	if !ok {
		return 0, fmt.Errorf("no count for %s", direction)
	}
	return n, nil
}

// FuncCounter adapts a function to Counter
type FuncCounter func(ctx context.Context, direction trafficflow.Direction) (int, error)

// Count implements Counter
func (f FuncCounter) Count(ctx context.Context, direction trafficflow.Direction) (int, error) {
	return f(ctx, direction)
}

// Collect queries every direction concurrently and returns validated counts.
// The first failure cancels the remaining queries.
func Collect(ctx context.Context, counter Counter) (trafficflow.VehicleCounts, error) {
	g, ctx := errgroup.WithContext(ctx)

	var mu sync.Mutex
	counts := make(trafficflow.VehicleCounts, len(trafficflow.Directions()))
	for _, d := range trafficflow.Directions() {
		d := d
		g.Go(func() error {
			n, err := counter.Count(ctx, d)
			if err != nil {
				return fmt.Errorf("count %s: %w", d, err)
			}
			log.Debugf("%s: %d vehicles", d, n)

			mu.Lock()
			counts[d] = n
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := counts.Validate(); err != nil {
		return nil, err
	}
	return counts, nil
}
