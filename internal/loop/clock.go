package loop

import (
	"context"
	"time"
)

// Clock paces the session and supplies the time delta of each tick.
type Clock interface {
	// Tick blocks until the next tick is due and returns the seconds it covers.
	Tick(ctx context.Context) (float64, error)
}

// NewClock returns a steady clock when steady is set and a wall clock
// otherwise, both ticking every period.
func NewClock(period time.Duration, steady bool) Clock {
	if steady {
		return NewSteadyClock(period)
	}
	return NewWallClock(period)
}

// FixedClock returns the same delta every tick without waiting.
// Runs driven by it are reproducible.
type FixedClock struct {
	Step float64
}

// Tick returns c.Step.
func (c FixedClock) Tick(ctx context.Context) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return c.Step, nil
}

// WallClock sleeps to hold a target tick period and reports the real time
// elapsed since the previous tick.
type WallClock struct {
	period time.Duration
	last   time.Time
	steady bool // Report period instead of the measured time
}

// NewWallClock starts a clock ticking every period.
func NewWallClock(period time.Duration) *WallClock {
	return &WallClock{period: period, last: time.Now()}
}

// NewSteadyClock paces ticks like a WallClock but always reports exactly
// period, so the simulation stays reproducible while running in real time.
func NewSteadyClock(period time.Duration) *WallClock {
	return &WallClock{period: period, last: time.Now(), steady: true}
}

// Tick waits out the rest of the current period.
func (c *WallClock) Tick(ctx context.Context) (float64, error) {
	if wait := c.period - time.Since(c.last); wait > 0 {
		timer := time.NewTimer(wait)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-timer.C:
		}
	} else if err := ctx.Err(); err != nil {
		return 0, err
	}

	now := time.Now()
	dt := now.Sub(c.last).Seconds()
	c.last = now
	if c.steady {
		return c.period.Seconds(), nil
	}
	return dt, nil
}
