package catalog

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleReturnsDistinctBooks(t *testing.T) {
	books := fixtureBooks()
	rng := rand.New(rand.NewSource(1))

	got := Sample(books, 3, rng)
	require.Len(t, got, 3)

	seen := map[string]bool{}
	for _, b := range got {
		assert.False(t, seen[b.ID], "no book may appear twice")
		seen[b.ID] = true
	}
}

func TestSampleFullDrawIsPermutation(t *testing.T) {
	books := fixtureBooks()
	rng := rand.New(rand.NewSource(2))

	got := Sample(books, len(books)+10, rng)
	assert.ElementsMatch(t, ids(books), ids(got), "over-asking returns every book exactly once")
}

func TestSampleDoesNotMutateSource(t *testing.T) {
	books := fixtureBooks()
	want := ids(books)

	_ = Sample(books, len(books), rand.New(rand.NewSource(3)))
	assert.Equal(t, want, ids(books))
}

func TestSampleEdgeCases(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	assert.Empty(t, Sample(nil, 5, rng))
	assert.Empty(t, Sample(fixtureBooks(), 0, rng))
	assert.Empty(t, Sample(fixtureBooks(), -1, rng))
	assert.NotNil(t, Sample(nil, 5, rng), "empty result is a slice, not nil")
}

func TestSampleIsDeterministicPerSeed(t *testing.T) {
	books := fixtureBooks()
	a := Sample(books, 3, rand.New(rand.NewSource(99)))
	b := Sample(books, 3, rand.New(rand.NewSource(99)))
	assert.Equal(t, ids(a), ids(b), "same seed, same draw")
}

// With enough draws every book should land in the first slot at least once;
// a sampler that only shuffles a suffix would fail this.
func TestSampleFirstSlotCoverage(t *testing.T) {
	books := fixtureBooks()
	rng := rand.New(rand.NewSource(5))

	first := map[string]bool{}
	for i := 0; i < 500; i++ {
		got := Sample(books, 1, rng)
		require.Len(t, got, 1)
		first[got[0].ID] = true
	}
	assert.Len(t, first, len(books))
}

// Every book must land in every output slot about equally often. A sampler
// with skewed slot probabilities, even one that still covers every slot,
// has to fall outside the tolerance band over this many draws.
func TestSampleSlotDistributionIsUniform(t *testing.T) {
	books := fixtureBooks()
	rng := rand.New(rand.NewSource(6))

	const draws = 10000
	n := len(books)
	counts := make(map[string][]int, n)
	for _, b := range books {
		counts[b.ID] = make([]int, n)
	}

	for i := 0; i < draws; i++ {
		got := Sample(books, n, rng)
		require.Len(t, got, n)
		for slot, b := range got {
			counts[b.ID][slot]++
		}
	}

	// Each cell is Binomial(draws, 1/n): mean 2000, stddev 40. A band of
	// ±10% is 5 standard deviations wide.
	expected := float64(draws) / float64(n)
	tolerance := expected / 10
	for id, slots := range counts {
		for slot, c := range slots {
			assert.InDelta(t, expected, float64(c), tolerance,
				"book %s landed in slot %d %d times, expected about %.0f", id, slot, c, expected)
		}
	}
}
