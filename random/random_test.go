package random

import (
	"math"
	"testing"
	"testing/iotest"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumberWithinBounds(t *testing.T) {
	r := NewWithSeed(1)
	seen := make(map[int]int)
	for range 10000 {
		v, err := r.Number(-3, 3)
		require.NoError(t, err)
		require.True(t, v >= -3 && v <= 3, "value %d out of range", v)
		seen[v]++
	}
	for v := -3; v <= 3; v++ {
		assert.Positive(t, seen[v], "value %d never sampled", v)
	}
}

func TestNumberSingleValue(t *testing.T) {
	for range 100 {
		v, err := GenerateNumber(5, 5)
		require.NoError(t, err)
		assert.Equal(t, 5, v)
	}
}

func TestNumberInvertedRange(t *testing.T) {
	_, err := GenerateNumber(3, 1)
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}

func TestNumberExtremes(t *testing.T) {
	r := NewWithSeed(7)
	for range 1000 {
		_, err := r.Number(math.MinInt, math.MaxInt)
		require.NoError(t, err)

		v, err := r.Number(math.MaxInt-1, math.MaxInt)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, v, math.MaxInt-1)

		v, err = r.Number(math.MinInt, math.MinInt+1)
		require.NoError(t, err)
		assert.LessOrEqual(t, v, math.MinInt+1)
	}
}

func TestSeededEnginesAreReproducible(t *testing.T) {
	a, err := NewWithSeed(42).Numbers(50, -1000, 1000, true)
	require.NoError(t, err)
	b, err := NewWithSeed(42).Numbers(50, -1000, 1000, true)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestNumbers(t *testing.T) {
	numbers, err := GenerateNumbers(0, 0, 10, false)
	require.NoError(t, err)
	assert.Empty(t, numbers)

	numbers, err = GenerateNumbers(200, DefaultRange.Min, DefaultRange.Max, true)
	require.NoError(t, err)
	assert.Len(t, numbers, 200)
	for _, v := range numbers {
		assert.True(t, DefaultRange.Contains(v))
	}

	_, err = GenerateNumbers(-1, 0, 10, false)
	assert.True(t, errors.Is(err, ErrInvalidArgument))

	_, err = GenerateNumbers(5, 10, 0, false)
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}

func TestEntropySourceUnavailable(t *testing.T) {
	orig := entropy
	entropy = iotest.ErrReader(errors.New("no entropy"))
	t.Cleanup(func() { entropy = orig })

	_, err := New()
	assert.True(t, errors.Is(err, ErrEntropySourceUnavailable))
	assert.Panics(t, func() { _, _ = GenerateNumber(0, 1) })
}

func TestUint64n(t *testing.T) {
	r := NewWithSeed(4)
	for range 1000 {
		assert.Less(t, r.Uint64n(3), uint64(3))
	}
	assert.Panics(t, func() { r.Uint64n(0) })
}
