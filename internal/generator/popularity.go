package generator

import (
	"fmt"
	"math"
	"sort"
)

const DefaultUpperLimitMultiplier = 1.5

// Popularity assigns starting weights to new catalogue entries and users.
type Popularity struct {
	multiplier float64
	rng        Source
}

func NewPopularity(rng Source, multiplier float64) *Popularity {
	if multiplier <= 0 {
		multiplier = DefaultUpperLimitMultiplier
	}
	return &Popularity{multiplier: multiplier, rng: rng}
}

// UpperLimit is the ceiling for fresh popularity draws: the highest existing
// score times the multiplier, or 1 when there is no positive score yet.
func (p *Popularity) UpperLimit(existing ...float64) float64 {
	highest := 0.0
	for _, s := range existing {
		if s > highest {
			highest = s
		}
	}
	if highest <= 0 {
		return 1.0
	}
	return highest * p.multiplier
}

// AssignInitial draws uniformly from [0, ceiling).
func (p *Popularity) AssignInitial(ceiling float64) float64 {
	return p.rng.Float64() * ceiling
}

// NormalizationFactor returns 1/sum, or false when sum cannot be normalised.
func NormalizationFactor(sum float64) (float64, bool) {
	if sum <= 0 || math.IsNaN(sum) || math.IsInf(sum, 0) {
		return 0, false
	}
	return 1 / sum, true
}

// Normalize scales weights to sum to 1. Empty or zero-sum input is returned as is.
func Normalize[K comparable](scores map[K]float64) map[K]float64 {
	if len(scores) == 0 {
		return scores
	}
	sum := 0.0
	for _, w := range scores {
		sum += w
	}
	factor, ok := NormalizationFactor(sum)
	if !ok {
		return scores
	}
	out := make(map[K]float64, len(scores))
	for k, w := range scores {
		out[k] = w * factor
	}
	return out
}

// WeightedSet draws keys with probability proportional to their weight.
// Key order is kept so a seeded source gives repeatable draws.
type WeightedSet[K comparable] struct {
	keys       []K
	cumulative []float64
	total      float64
}

func NewWeightedSet[K comparable](keys []K, weights []float64) (*WeightedSet[K], error) {
	if len(keys) != len(weights) {
		return nil, fmt.Errorf("weights length (%d) must match keys length (%d)", len(weights), len(keys))
	}
	ws := &WeightedSet[K]{
		keys:       append([]K(nil), keys...),
		cumulative: make([]float64, len(weights)),
	}
	for i, w := range weights {
		if w > 0 && !math.IsInf(w, 0) {
			ws.total += w
		}
		ws.cumulative[i] = ws.total
	}
	return ws, nil
}

func (w *WeightedSet[K]) Len() int { return len(w.keys) }

func (w *WeightedSet[K]) Keys() []K { return w.keys }

// Pick draws one key. A set whose weights are all zero falls back to a uniform draw.
func (w *WeightedSet[K]) Pick(rng Source) K {
	if w.total <= 0 {
		return w.keys[rng.Intn(len(w.keys))]
	}
	r := rng.Float64() * w.total
	i := sort.Search(len(w.cumulative), func(i int) bool { return w.cumulative[i] > r })
	if i == len(w.cumulative) {
		// r rounded up to total; take the last key that carries weight.
		i = sort.Search(len(w.cumulative), func(i int) bool { return w.cumulative[i] >= w.total })
	}
	return w.keys[i]
}
