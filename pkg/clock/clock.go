// Package clock provides tick sources that pace a schedule run, one
// call to Wait per simulated second.
package clock

import (
	"context"
	"sync/atomic"
	"time"
)

// Clock suspends the caller for one time unit
type Clock interface {
	Wait(ctx context.Context) error
}

// Ticker paces ticks in real time
type Ticker struct {
	ticker  *time.Ticker
	elapsed atomic.Int64
}

// NewTicker creates a real-time clock emitting one unit per interval
func NewTicker(interval time.Duration) *Ticker {
	if interval <= 0 {
		interval = time.Second
	}
	return &Ticker{ticker: time.NewTicker(interval)}
}

// Wait blocks until the next tick or until ctx is done
func (t *Ticker) Wait(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.ticker.C:
		t.elapsed.Add(1)
		return nil
	}
}

// Elapsed returns the number of units handed out
func (t *Ticker) Elapsed() int64 {
	return t.elapsed.Load()
}

// Stop releases the underlying ticker
func (t *Ticker) Stop() {
	t.ticker.Stop()
}

// Instant never blocks; it is used for fast-forward runs
type Instant struct {
	elapsed atomic.Int64
}

// NewInstant creates a clock that returns immediately
func NewInstant() *Instant {
	return &Instant{}
}

// Wait returns at once unless ctx is already done
func (c *Instant) Wait(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.elapsed.Add(1)
	return nil
}

// Elapsed returns the number of units handed out
func (c *Instant) Elapsed() int64 {
	return c.elapsed.Load()
}

// Manual releases one unit for every call to Step
type Manual struct {
	steps   chan struct{}
	elapsed atomic.Int64
}

// NewManual creates a clock driven by Step
func NewManual() *Manual {
	return &Manual{steps: make(chan struct{})}
}

// Wait blocks until Step is called or ctx is done
func (c *Manual) Wait(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-c.steps:
		c.elapsed.Add(1)
		return nil
	}
}

// Step releases exactly one waiting caller, or returns false once ctx is done
func (c *Manual) Step(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return false
	case c.steps <- struct{}{}:
		return true
	}
}

// Elapsed returns the number of units handed out
func (c *Manual) Elapsed() int64 {
	return c.elapsed.Load()
}
