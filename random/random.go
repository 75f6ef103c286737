package random

import (
	cryptorand "crypto/rand"
	"io"
	"math/rand/v2"

	"github.com/pkg/errors"

	"github.com/gpahal/randengine/predicates"
)

var (
	// ErrInvalidArgument is returned when a range, count, length or character
	// class set cannot be satisfied.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrEntropySourceUnavailable is returned when a new engine cannot be seeded
	// from the system entropy source.
	ErrEntropySourceUnavailable = errors.New("entropy source unavailable")
)

// entropy seeds every engine returned by New.
var entropy io.Reader = cryptorand.Reader

// Random is a source of random numbers. It is not thread-safe.
type Random struct {
	rnd *rand.Rand
}

// New returns a new Random backed by ChaCha8 and seeded from the system
// entropy source.
func New() (*Random, error) {
	var seed [32]byte
	if _, err := io.ReadFull(entropy, seed[:]); err != nil {
		return nil, errors.Wrapf(ErrEntropySourceUnavailable, "read seed: %v", err)
	}
	return NewWithSource(rand.NewChaCha8(seed)), nil
}

// NewWithSeed returns a new Random whose output is fully determined by seed.
func NewWithSeed(seed uint64) *Random {
	return NewWithSource(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewWithSource returns a new Random drawing from src.
func NewWithSource(src rand.Source) *Random {
	return &Random{rnd: rand.New(src)}
}

// fresh returns a newly seeded engine. A missing entropy source is fatal.
func fresh() *Random {
	return predicates.Must(New())
}

// Uint64n returns, as an uint64, a pseudo-random number in [0,n).
// It panics if n == 0.
func (r *Random) Uint64n(n uint64) uint64 {
	return r.rnd.Uint64N(n)
}

// Float64 returns, as a float64, a pseudo-random number in [0.0,1.0).
func (r *Random) Float64() float64 {
	return r.rnd.Float64()
}

// Shuffle pseudo-randomizes the order of elements.
// n is the number of elements. Shuffle panics if n < 0.
// swap swaps the elements with indexes i and j.
func (r *Random) Shuffle(n int, swap func(i, j int)) {
	r.rnd.Shuffle(n, swap)
}
