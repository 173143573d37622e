package randutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/otml/errors"
)

func TestSeed_Deterministic(t *testing.T) {
	Seed(42)
	first := []int{IntN(100), IntN(100), IntN(100)}
	Seed(42)
	second := []int{IntN(100), IntN(100), IntN(100)}
	assert.Equal(t, first, second)
}

func TestChoice(t *testing.T) {
	_, ok := Choice([]string{})
	assert.False(t, ok)

	Reseed()
	items := []string{"b", "p", "d"}
	for i := 0; i < 50; i++ {
		got, ok := Choice(items)
		require.True(t, ok)
		assert.Contains(t, items, got)
	}
}

func TestChooseByWeight(t *testing.T) {
	t.Run("zero weight never chosen", func(t *testing.T) {
		options := []Weighted[string]{
			{Value: "insert_segment", Weight: 0},
			{Value: "delete_segment", Weight: 3},
		}
		for i := 0; i < 50; i++ {
			got, err := ChooseByWeight(options)
			require.NoError(t, err)
			assert.Equal(t, "delete_segment", got)
		}
	})

	t.Run("all values reachable", func(t *testing.T) {
		Seed(7)
		options := []Weighted[int]{{Value: 1, Weight: 1}, {Value: 2, Weight: 1}}
		seen := map[int]bool{}
		for i := 0; i < 200; i++ {
			got, err := ChooseByWeight(options)
			require.NoError(t, err)
			seen[got] = true
		}
		assert.Len(t, seen, 2)
	})

	t.Run("zero total", func(t *testing.T) {
		_, err := ChooseByWeight([]Weighted[string]{{Value: "x", Weight: 0}})
		assert.True(t, errors.IsInvalidInputError(err))
	})

	t.Run("empty options", func(t *testing.T) {
		_, err := ChooseByWeight[string](nil)
		assert.Error(t, err)
	})

	t.Run("negative weight", func(t *testing.T) {
		_, err := ChooseByWeight([]Weighted[string]{{Value: "x", Weight: -1}, {Value: "y", Weight: 2}})
		assert.True(t, errors.IsInvalidInputError(err))
	})
}
