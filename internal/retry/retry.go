// Package retry is the bounded-retry-with-jitter executor every step runs on.
package retry

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/drexlabs/autofarm/internal/metrics"
	"github.com/drexlabs/autofarm/internal/wait"
)

// Policy bounds one step invocation. Delays are seconds; the delay is
// re-sampled uniformly from the same range on every attempt, no backoff.
type Policy struct {
	MaxRetries int
	DelayMin   float64
	DelayMax   float64
}

// Action yields boolean success. A panic inside an action counts as false.
type Action func(ctx context.Context) bool

// Do invokes fn up to p.MaxRetries times, sleeping a jittered delay between
// attempts, and returns the last observed result. Exhaustion is reported as
// false, never escalated: the caller moves on regardless.
func Do(ctx context.Context, log zerolog.Logger, name string, p Policy, fn Action) bool {
	max := p.MaxRetries
	if max < 1 {
		max = 1
	}
	for attempt := 1; attempt <= max; attempt++ {
		if invoke(ctx, fn) {
			return true
		}
		if attempt == max {
			break
		}
		metrics.RetriesTotal.WithLabelValues(name).Inc()
		d := wait.JitterSeconds(p.DelayMin, p.DelayMax)
		log.Warn().Str("step", name).Int("attempt", attempt).Int("max", max).Dur("wait", d).Msg("attempt failed, retrying")
		if err := wait.Sleep(ctx, d); err != nil {
			return false
		}
	}
	return false
}

func invoke(ctx context.Context, fn Action) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	return fn(ctx)
}
