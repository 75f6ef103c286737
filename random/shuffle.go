package random

import (
	"slices"

	"github.com/gpahal/randengine/predicates"
)

// Shuffle returns a uniformly shuffled copy of items, drawn from a freshly
// seeded engine. items is left untouched.
func Shuffle[T any](items []T) []T {
	return ShuffleWith(fresh(), items)
}

// ShuffleWith is like Shuffle but draws from r.
func ShuffleWith[T any](r *Random, items []T) []T {
	shuffled := slices.Clone(items)
	r.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
	return shuffled
}

// ShuffleN shuffles exactly the first n elements of items in place.
func ShuffleN[T any](r *Random, items []T, n int) error {
	if err := predicates.Require(n >= 0 && n <= len(items), ErrInvalidArgument, "count %d outside [0, %d]", n, len(items)); err != nil {
		return err
	}
	r.Shuffle(n, func(i, j int) { items[i], items[j] = items[j], items[i] })
	return nil
}
