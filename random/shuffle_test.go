package random

import (
	"fmt"
	"slices"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShuffleIsPermutation(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	shuffled := Shuffle(items)

	assert.Equal(t, []int{1, 2, 3, 4, 5}, items)
	assert.ElementsMatch(t, items, shuffled)
}

func TestShuffleUniform(t *testing.T) {
	const trials = 60000
	r := NewWithSeed(9)
	counts := make(map[string]int)
	for range trials {
		counts[fmt.Sprint(ShuffleWith(r, []int{1, 2, 3}))]++
	}

	require.Len(t, counts, 6)
	for perm, n := range counts {
		assert.InDelta(t, trials/6, n, trials/60, "permutation %s", perm)
	}
}

func TestShuffleEmpty(t *testing.T) {
	assert.Empty(t, Shuffle([]string{}))
	assert.Nil(t, Shuffle[string](nil))
}

func TestShuffleN(t *testing.T) {
	r := NewWithSeed(2)
	items := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}

	require.NoError(t, ShuffleN(r, items, 5))
	head := slices.Clone(items[:5])
	slices.Sort(head)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, head)
	assert.Equal(t, []int{5, 6, 7, 8, 9}, items[5:])

	assert.True(t, errors.Is(ShuffleN(r, items, 11), ErrInvalidArgument))
	assert.True(t, errors.Is(ShuffleN(r, items, -1), ErrInvalidArgument))
}
