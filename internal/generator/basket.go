package generator

import "math"

const DefaultBasketScaling = 0.6

// BasketSizeSampler draws how many picks go into one order. Size i has
// weight exp(-scaling*i), so small baskets dominate.
type BasketSizeSampler struct {
	scaling float64
	rng     Source

	cachedMax int
	cached    *WeightedSet[int]
}

func NewBasketSizeSampler(rng Source, scaling float64) *BasketSizeSampler {
	if scaling <= 0 {
		scaling = DefaultBasketScaling
	}
	return &BasketSizeSampler{scaling: scaling, rng: rng}
}

// BasketWeights returns the normalised probability of each size 1..maxItems.
func BasketWeights(maxItems int, scaling float64) []float64 {
	weights := make([]float64, maxItems)
	total := 0.0
	for i := range weights {
		weights[i] = math.Exp(-scaling * float64(i+1))
		total += weights[i]
	}
	for i := range weights {
		weights[i] /= total
	}
	return weights
}

// Sample returns a size in [1, maxItems].
func (b *BasketSizeSampler) Sample(maxItems int) (int, error) {
	if maxItems <= 0 {
		return 0, precondition("max_items", maxItems, ErrInvalidCount)
	}
	if b.cached == nil || b.cachedMax != maxItems {
		sizes := make([]int, maxItems)
		for i := range sizes {
			sizes[i] = i + 1
		}
		set, err := NewWeightedSet(sizes, BasketWeights(maxItems, b.scaling))
		if err != nil {
			return 0, err
		}
		b.cached, b.cachedMax = set, maxItems
	}
	return b.cached.Pick(b.rng), nil
}
