// Package wait produces bounded random delays used for jitter and pacing.
package wait

import (
	"context"
	"math/rand"
	"time"
)

// Jitter returns a uniformly distributed duration in [min, max].
func Jitter(min, max time.Duration) time.Duration {
	if max <= min {
		return min
	}
	return min + time.Duration(rand.Int63n(int64(max-min)+1))
}

// JitterSeconds samples a delay from a [min, max] range given in seconds.
func JitterSeconds(min, max float64) time.Duration {
	if min < 0 {
		min = 0
	}
	if max < min {
		max = min
	}
	return Jitter(time.Duration(min*float64(time.Second)), time.Duration(max*float64(time.Second)))
}

// Sleep blocks for d or until ctx is done, whichever comes first.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
