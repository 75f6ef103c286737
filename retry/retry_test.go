package retry

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

var errFlaky = errors.New("flaky")

func TestDoSucceedsAfterRetries(t *testing.T) {
	calls := 0
	retries := 0
	err := Do(func() error {
		calls++
		if calls < 3 {
			return errFlaky
		}
		return nil
	}, Options{
		Delayer: FixedDelayer(time.Millisecond),
		Stopper: MaxAttemptsStopper(5),
		OnRetry: func(attempts int, delay time.Duration, err error) { retries++ },
	})

	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, 2, retries)
}

func TestDoStopsAtMaxAttempts(t *testing.T) {
	calls := 0
	err := Do(func() error {
		calls++
		return errFlaky
	}, Options{Delayer: FixedDelayer(0), Stopper: MaxAttemptsStopper(3)})

	assert.ErrorIs(t, err, errFlaky)
	assert.Equal(t, 3, calls)
}

func TestDoErrStop(t *testing.T) {
	calls := 0
	err := Do(func() error {
		calls++
		return errors.Wrap(ErrStop, "give up")
	}, Options{Delayer: FixedDelayer(0), Stopper: MaxAttemptsStopper(3)})

	assert.ErrorIs(t, err, ErrStop)
	assert.Equal(t, 1, calls)
}

func TestDoWithContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := DoWithContext(ctx, func() error {
		calls++
		cancel()
		return errFlaky
	}, Options{Delayer: FixedDelayer(time.Hour), Stopper: MaxAttemptsStopper(10)})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestContextStopper(t *testing.T) {
	s := ContextStopper()
	assert.True(t, s.Stop(time.Now(), 1, errors.Wrap(context.DeadlineExceeded, "dial")))
	assert.False(t, s.Stop(time.Now(), 1, errFlaky))
}

func TestDelayers(t *testing.T) {
	now := time.Now()
	assert.Equal(t, 3*time.Second, LinearDelayer(time.Second).Delay(now, 3, nil))
	assert.Equal(t, time.Duration(8), ExponentialBackoffDelayer(1).Delay(now, 3, nil))
	assert.Equal(t, 2*time.Second, LimitDelayer(LinearDelayer(time.Second), 2*time.Second).Delay(now, 5, nil))
	assert.Equal(t, time.Second, MinDelayer(FixedDelayer(time.Second), FixedDelayer(time.Minute)).Delay(now, 1, nil))
	assert.Equal(t, time.Minute, MaxDelayer(FixedDelayer(time.Second), FixedDelayer(time.Minute)).Delay(now, 1, nil))
	assert.Equal(t, 61*time.Second, SumDelayer(FixedDelayer(time.Second), FixedDelayer(time.Minute)).Delay(now, 1, nil))
	assert.Nil(t, SumDelayer())
}

func TestRandomDelayers(t *testing.T) {
	now := time.Now()
	rd := RandomDelayer(time.Second, 100*time.Millisecond)
	jd := JitterDelayer(FixedDelayer(time.Second), 0.5)
	for range 100 {
		d := rd.Delay(now, 1, nil)
		assert.True(t, d >= time.Second && d <= 1100*time.Millisecond, "delay %v", d)

		d = jd.Delay(now, 1, nil)
		assert.True(t, d >= time.Second && d <= 1500*time.Millisecond, "delay %v", d)
	}
	assert.Equal(t, time.Second, RandomDelayer(time.Second, 0).Delay(now, 1, nil))
}

func TestRandomDelayerCoversJitter(t *testing.T) {
	rd := RandomDelayer(0, 2)
	seen := make(map[time.Duration]bool)
	for range 1000 {
		seen[rd.Delay(time.Now(), 1, nil)] = true
	}
	assert.Equal(t, map[time.Duration]bool{0: true, 1: true, 2: true}, seen)
}
