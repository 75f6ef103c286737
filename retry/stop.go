package retry

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

type Stopper interface {
	Stop(startTime time.Time, attempts int, err error) bool
}

type StopperFunc func(startTime time.Time, attempts int, err error) bool

func (sf StopperFunc) Stop(startTime time.Time, attempts int, err error) bool {
	return sf(startTime, attempts, err)
}

func MaxAttemptsStopper(maxAttempts int) Stopper {
	return StopperFunc(func(startTime time.Time, attempts int, err error) bool {
		return attempts >= maxAttempts
	})
}

func TimeoutStopper(d time.Duration) Stopper {
	return StopperFunc(func(startTime time.Time, attempts int, err error) bool {
		return time.Now().After(startTime.Add(d))
	})
}

func DeadlineStopper(deadline time.Time) Stopper {
	return StopperFunc(func(startTime time.Time, attempts int, err error) bool {
		return time.Now().After(deadline)
	})
}

func AnyStopper(stoppers ...Stopper) Stopper {
	return StopperFunc(func(startTime time.Time, attempts int, err error) bool {
		for _, stopper := range stoppers {
			if stopper.Stop(startTime, attempts, err) {
				return true
			}
		}
		return false
	})
}

func AllStoppers(stoppers ...Stopper) Stopper {
	return StopperFunc(func(startTime time.Time, attempts int, err error) bool {
		for _, stopper := range stoppers {
			if !stopper.Stop(startTime, attempts, err) {
				return false
			}
		}
		return true
	})
}

// ErrorStopper stops as soon as permanent reports the error as not worth
// retrying.
func ErrorStopper(permanent func(err error) bool) Stopper {
	return StopperFunc(func(startTime time.Time, attempts int, err error) bool {
		return permanent(err)
	})
}

// ContextStopper stops once the error is a context cancellation or deadline.
func ContextStopper() Stopper {
	return ErrorStopper(func(err error) bool {
		return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
	})
}
