// Package random provides the seeded random source shared by every simulation
// component, plus weighted selection helpers built on top of it.
package random

import (
	"math/rand"
	"time"
)

const tokenAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// Source wraps a *rand.Rand so a whole run can be replayed from one seed.
// It is not safe for concurrent use; the generator is single-threaded.
type Source struct {
	seed int64
	r    *rand.Rand
}

// New returns a Source seeded with seed. A zero seed is replaced with one
// derived from the clock; Seed reports the effective value either way.
func New(seed int64) *Source {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Source{seed: seed, r: rand.New(rand.NewSource(seed))}
}

// Seed returns the effective seed.
func (s *Source) Seed() int64 { return s.seed }

// Float64 returns a uniform value in [0, 1).
func (s *Source) Float64() float64 { return s.r.Float64() }

// Intn returns a uniform value in [0, n). n must be > 0.
func (s *Source) Intn(n int) int { return s.r.Intn(n) }

// IntBetween returns a uniform integer in [min, max], both inclusive.
func (s *Source) IntBetween(min, max int) int {
	if max <= min {
		return min
	}
	return min + s.r.Intn(max-min+1)
}

// Chance reports true with probability p.
func (s *Source) Chance(p float64) bool { return s.r.Float64() < p }

// Read fills p with random bytes so the source can back uuid generation.
func (s *Source) Read(p []byte) (int, error) { return s.r.Read(p) }

// Shuffle permutes n elements through swap.
func (s *Source) Shuffle(n int, swap func(i, j int)) { s.r.Shuffle(n, swap) }

// Token returns an uppercase alphanumeric token without ambiguous characters.
func (s *Source) Token(length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = tokenAlphabet[s.r.Intn(len(tokenAlphabet))]
	}
	return string(b)
}

// Pick returns a uniformly chosen element. It panics on an empty slice, as
// indexing would.
func Pick[T any](s *Source, items []T) T {
	return items[s.Intn(len(items))]
}

// ShuffleSlice shuffles items in place.
func ShuffleSlice[T any](s *Source, items []T) {
	s.Shuffle(len(items), func(i, j int) { items[i], items[j] = items[j], items[i] })
}
