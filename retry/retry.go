package retry

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

var (
	ErrStop = errors.New("stop retries")
)

type RetryableFunc func() error

type Options struct {
	Delayer Delayer
	Stopper Stopper
	// OnRetry, if set, is called before sleeping for the next attempt.
	OnRetry func(attempts int, delay time.Duration, err error)
}

func Do(fn RetryableFunc, opts Options) error {
	return DoWithContext(context.Background(), fn, opts)
}

// DoWithContext calls fn until it succeeds, returns ErrStop, the stopper fires
// or ctx is done. The last error from fn is returned, or ctx.Err() if the
// context ended first.
func DoWithContext(ctx context.Context, fn RetryableFunc, opts Options) error {
	if fn == nil {
		return nil
	}

	startTime := time.Now()
	attempts := 0
	for {
		err := fn()
		if err == nil || errors.Is(err, ErrStop) || opts.Stopper == nil || opts.Delayer == nil {
			return err
		}

		attempts += 1
		if opts.Stopper.Stop(startTime, attempts, err) {
			return err
		}

		d := opts.Delayer.Delay(startTime, attempts, err)
		if opts.OnRetry != nil {
			opts.OnRetry(attempts, d, err)
		}
		if err := sleep(ctx, d); err != nil {
			return err
		}
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
