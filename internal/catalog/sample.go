package catalog

import "math/rand"

// Sample returns n books drawn without replacement, in shuffled order. The
// shuffle runs over a copy so the source slice keeps its order. n at or above
// len(books) returns a full shuffled copy. The rng is injected so discover
// surfaces can seed it deterministically per day.
func Sample(books []Book, n int, rng *rand.Rand) []Book {
	if n <= 0 || len(books) == 0 {
		return []Book{}
	}
	out := make([]Book, len(books))
	copy(out, books)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	if n < len(out) {
		out = out[:n]
	}
	return out
}
