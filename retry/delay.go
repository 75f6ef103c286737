package retry

import (
	"math"
	"time"

	"github.com/gpahal/randengine/predicates"
	"github.com/gpahal/randengine/random"
)

const (
	// 1 << 63 would overflow signed int64 (time.Duration), thus 62
	maxExp = 62
)

type Delayer interface {
	Delay(startTime time.Time, attempts int, err error) time.Duration
}

type DelayerFunc func(startTime time.Time, attempts int, err error) time.Duration

func (df DelayerFunc) Delay(startTime time.Time, attempts int, err error) time.Duration {
	return df(startTime, attempts, err)
}

func FixedDelayer(d time.Duration) Delayer {
	return DelayerFunc(func(startTime time.Time, attempts int, err error) time.Duration {
		return d
	})
}

func LinearDelayer(step time.Duration) Delayer {
	return DelayerFunc(func(startTime time.Time, attempts int, err error) time.Duration {
		return time.Duration(attempts) * step
	})
}

func ExponentialBackoffDelayer(coefficient int) Delayer {
	if coefficient <= 0 {
		return nil
	}

	currMaxExp := maxExp - int(math.Floor(math.Log2(float64(coefficient))))
	return DelayerFunc(func(startTime time.Time, attempts int, err error) time.Duration {
		if attempts > currMaxExp {
			attempts = currMaxExp
		}
		return time.Duration(coefficient * (1 << attempts))
	})
}

// RandomDelayer waits minDelay plus a jitter drawn uniformly from
// [0, maxJitter]. Delayers are not safe for concurrent use.
func RandomDelayer(minDelay time.Duration, maxJitter time.Duration) Delayer {
	rnd := predicates.Must(random.New())
	bound := uint64(max(maxJitter, 0)) + 1
	return DelayerFunc(func(startTime time.Time, attempts int, err error) time.Duration {
		return max(minDelay, 0) + time.Duration(rnd.Uint64n(bound))
	})
}

// JitterDelayer adds a random jitter of up to fraction of the inner delay.
func JitterDelayer(inner Delayer, fraction float64) Delayer {
	if inner == nil {
		return nil
	}

	rnd := predicates.Must(random.New())
	return DelayerFunc(func(startTime time.Time, attempts int, err error) time.Duration {
		d := inner.Delay(startTime, attempts, err)
		return d + time.Duration(rnd.Float64()*fraction*float64(d))
	})
}

func LimitDelayer(inner Delayer, limit time.Duration) Delayer {
	if inner == nil {
		return nil
	}

	return DelayerFunc(func(startTime time.Time, attempts int, err error) time.Duration {
		d := inner.Delay(startTime, attempts, err)
		if d > limit {
			d = limit
		}
		return d
	})
}

func MinDelayer(delayers ...Delayer) Delayer {
	return CombineDelayers(func(ds []time.Duration) time.Duration {
		min := ds[0]
		for _, d := range ds[1:] {
			if d < min {
				min = d
			}
		}
		return min
	}, delayers...)
}

func MaxDelayer(delayers ...Delayer) Delayer {
	return CombineDelayers(func(ds []time.Duration) time.Duration {
		var max time.Duration
		for _, d := range ds {
			if d > max {
				max = d
			}
		}
		return max
	}, delayers...)
}

func SumDelayer(delayers ...Delayer) Delayer {
	return CombineDelayers(func(ds []time.Duration) time.Duration {
		var sum time.Duration
		for _, d := range ds {
			sum += d
		}
		return sum
	}, delayers...)
}

func CombineDelayers(combine func(ds []time.Duration) time.Duration, delayers ...Delayer) Delayer {
	if len(delayers) == 0 {
		return nil
	}

	return DelayerFunc(func(startTime time.Time, attempts int, err error) time.Duration {
		ds := make([]time.Duration, 0, len(delayers))
		for _, delayer := range delayers {
			if delayer == nil {
				ds = append(ds, 0)
				continue
			}
			ds = append(ds, delayer.Delay(startTime, attempts, err))
		}
		return combine(ds)
	})
}
