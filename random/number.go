package random

import (
	"math"

	"github.com/gpahal/randengine/predicates"
)

// Range is a closed interval [Min, Max] of integers.
type Range struct {
	Min int
	Max int
}

// DefaultRange is used by callers that do not supply bounds of their own.
var DefaultRange = Range{Min: -100, Max: 100}

// Validate reports ErrInvalidArgument if Min > Max.
func (rg Range) Validate() error {
	return predicates.Require(rg.Min <= rg.Max, ErrInvalidArgument, "min %d greater than max %d", rg.Min, rg.Max)
}

// Contains reports whether v lies in the range.
func (rg Range) Contains(v int) bool {
	return v >= rg.Min && v <= rg.Max
}

// Number returns an integer uniformly sampled from [min, max].
func (r *Random) Number(min, max int) (int, error) {
	if err := (Range{Min: min, Max: max}).Validate(); err != nil {
		return 0, err
	}
	return r.number(min, max), nil
}

// Numbers returns count integers, each sampled independently from [min, max].
// If shuffle is set the result is permuted after generation.
func (r *Random) Numbers(count, min, max int, shuffle bool) ([]int, error) {
	if err := predicates.Require(count >= 0, ErrInvalidArgument, "negative count %d", count); err != nil {
		return nil, err
	}
	if err := (Range{Min: min, Max: max}).Validate(); err != nil {
		return nil, err
	}

	numbers := make([]int, count)
	for i := range numbers {
		numbers[i] = r.number(min, max)
	}
	if shuffle {
		r.Shuffle(len(numbers), func(i, j int) { numbers[i], numbers[j] = numbers[j], numbers[i] })
	}
	return numbers, nil
}

// number assumes min <= max. The span is computed in uint64 so that the whole
// int domain is reachable without overflow.
func (r *Random) number(min, max int) int {
	span := uint64(max) - uint64(min)
	if span == math.MaxUint64 {
		return int(r.rnd.Uint64())
	}
	return int(uint64(min) + r.Uint64n(span+1))
}

// GenerateNumber is Number on a freshly seeded engine.
func GenerateNumber(min, max int) (int, error) {
	return fresh().Number(min, max)
}

// GenerateNumbers is Numbers on a freshly seeded engine.
func GenerateNumbers(count, min, max int, shuffle bool) ([]int, error) {
	return fresh().Numbers(count, min, max, shuffle)
}
