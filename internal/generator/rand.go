package generator

import (
	"math/rand"
	"time"
)

// Source is the randomness every sampler draws from. *rand.Rand satisfies it.
type Source interface {
	Float64() float64
	Intn(n int) int
	Shuffle(n int, swap func(i, j int))
}

// NewSource returns a seeded generator. Seed 0 seeds from the clock.
func NewSource(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// uniformInt draws from [lo, hi].
func uniformInt(rng Source, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo+1)
}
