package reliability

import (
	"context"
	"math/rand"
	"time"
)

// Retry runs fn up to cfg.MaxAttempts times, sleeping an exponentially
// growing (optionally jittered) delay between attempts, and returning the
// last error if every attempt fails or the context is cancelled first.
func Retry(ctx context.Context, cfg RetryConfig, fn func(context.Context) error) error {
	var err error
	delay := cfg.InitialDelay

	attempts := cfg.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			wait := delay
			if cfg.Jitter {
				wait = jitter(delay)
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
			delay = time.Duration(float64(delay) * cfg.BackoffMultiplier)
			if delay > cfg.MaxDelay {
				delay = cfg.MaxDelay
			}
		}

		err = fn(ctx)
		if err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
	return err
}

func jitter(d time.Duration) time.Duration {
	if d <= 0 {
		return d
	}
	half := d / 2
	return half + time.Duration(rand.Int63n(int64(half)+1))
}
