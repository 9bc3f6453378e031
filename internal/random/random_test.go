package random_test

import (
	"testing"

	"storefront-seeder/internal/random"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSource_SameSeedReplays(t *testing.T) {
	a := random.New(42)
	b := random.New(42)
	for i := 0; i < 100; i++ {
		require.Equal(t, a.Float64(), b.Float64())
	}
	assert.Equal(t, a.Token(6), b.Token(6))
}

func TestSource_ZeroSeedIsReplaced(t *testing.T) {
	s := random.New(0)
	assert.NotZero(t, s.Seed())
}

func TestSource_IntBetweenInclusive(t *testing.T) {
	s := random.New(7)
	seen := map[int]bool{}
	for i := 0; i < 2000; i++ {
		v := s.IntBetween(3, 6)
		require.GreaterOrEqual(t, v, 3)
		require.LessOrEqual(t, v, 6)
		seen[v] = true
	}
	assert.Len(t, seen, 4)
	assert.Equal(t, 5, s.IntBetween(5, 5))
}

func TestSource_TokenAlphabet(t *testing.T) {
	s := random.New(1)
	tok := s.Token(32)
	assert.Len(t, tok, 32)
	assert.NotContains(t, tok, "O")
	assert.NotContains(t, tok, "0")
	assert.NotContains(t, tok, "I")
	assert.NotContains(t, tok, "1")
}

func TestWeightedChoice_Thresholds(t *testing.T) {
	wc, err := random.NewWeightedChoice([]random.Weighted[string]{
		{Item: "a", Weight: 1},
		{Item: "b", Weight: 1},
		{Item: "skip", Weight: 0},
		{Item: "c", Weight: 2},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, wc.Len())

	tests := []struct {
		roll float64
		want string
	}{
		{0, "a"},
		{0.25, "a"},
		{0.2500001, "b"},
		{0.5, "b"},
		{0.51, "c"},
		{0.999999, "c"},
		{1, "c"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, wc.At(tt.roll), "roll %v", tt.roll)
	}
}

func TestWeightedChoice_Empty(t *testing.T) {
	_, err := random.NewWeightedChoice([]random.Weighted[int]{{Item: 1, Weight: 0}})
	assert.ErrorIs(t, err, random.ErrNoChoices)
}

func TestWeightedChoice_Distribution(t *testing.T) {
	wc, err := random.NewWeightedChoice([]random.Weighted[string]{
		{Item: "heavy", Weight: 3},
		{Item: "light", Weight: 1},
	})
	require.NoError(t, err)

	src := random.New(99)
	counts := map[string]int{}
	const draws = 20000
	for i := 0; i < draws; i++ {
		counts[wc.Pick(src)]++
	}
	assert.InDelta(t, 0.75, float64(counts["heavy"])/draws, 0.02)
}
