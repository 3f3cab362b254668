package pacing

import (
	"context"
	"math/rand"
	"time"
)

// Range is a uniform random delay bound. Every sleep picks a fresh
// duration in [Min, Max].
type Range struct {
	Min time.Duration
	Max time.Duration
}

// Next returns a random duration uniformly distributed in [Min, Max]
func (r Range) Next() time.Duration {
	if r.Max <= r.Min {
		return r.Min
	}
	return r.Min + time.Duration(rand.Int63n(int64(r.Max-r.Min)))
}

// Fixed returns a Range that always yields d
func Fixed(d time.Duration) Range {
	return Range{Min: d, Max: d}
}

// Pacer owns the delay policy for the collection loop: the settle wait
// after navigation, the jittered pause between scrolls, and the long
// pause taken after repeated stalls.
type Pacer struct {
	Settle      time.Duration
	ScrollDelay Range
	StallPause  Range
}

// SleepSettle waits the post-navigation settle delay
func (p *Pacer) SleepSettle(ctx context.Context) error {
	return Wait(ctx, p.Settle)
}

// SleepScroll waits a randomized inter-scroll delay
func (p *Pacer) SleepScroll(ctx context.Context) error {
	return Wait(ctx, p.ScrollDelay.Next())
}

// SleepStall waits the long randomized pause taken after repeated stalls
func (p *Pacer) SleepStall(ctx context.Context) error {
	return Wait(ctx, p.StallPause.Next())
}

// Wait sleeps for the given duration or until the context is cancelled
func Wait(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
