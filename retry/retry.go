package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/vortex-fintech/go-redisreg/timeutil"
)

// Bootstrap retries fn with exponential backoff until it succeeds or the
// elapsed budget runs out. Intended for initial connection establishment,
// not for per-command recovery (the dispatcher retries at most once and on
// its own terms).
func Bootstrap(ctx context.Context, fn func() error) error {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = 250 * time.Millisecond
	exp.Multiplier = 2.0
	exp.MaxInterval = 3 * time.Second
	exp.RandomizationFactor = 0.5
	exp.Reset()

	type unit struct{}
	op := func() (unit, error) {
		return unit{}, fn()
	}

	_, err := backoff.Retry(
		ctx,
		op,
		backoff.WithBackOff(exp),
		backoff.WithMaxElapsedTime(15*time.Second),
	)
	return err
}

// Permanent marks err as non-retryable for Bootstrap.
func Permanent(err error) error {
	return backoff.Permanent(err)
}

// Fixed retries fn up to attempts times with a constant delay between
// attempts. The clock is injectable so tests can run without real sleeps;
// nil falls back to timeutil.Default.
func Fixed(ctx context.Context, clk timeutil.Clock, attempts int, delay time.Duration, fn func() error) error {
	if clk == nil {
		clk = timeutil.Default
	}
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for i := 0; i < attempts; i++ {
		err = fn()
		if err == nil {
			return nil
		}
		if i == attempts-1 {
			break
		}
		if serr := clk.Sleep(ctx, delay); serr != nil {
			return serr
		}
	}
	return err
}
