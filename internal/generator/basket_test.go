package generator

import (
	"errors"
	"math"
	"testing"
)

func TestBasketSizeDecay(t *testing.T) {
	sampler := NewBasketSizeSampler(NewSource(42), 0)

	counts := make(map[int]int)
	for i := 0; i < 10000; i++ {
		n, err := sampler.Sample(5)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n < 1 || n > 5 {
			t.Fatalf("basket size out of [1,5]: %d", n)
		}
		counts[n]++
	}

	if counts[1] <= counts[5] {
		t.Errorf("expected size 1 to be more frequent than size 5, got %v", counts)
	}
}

func TestBasketSizeSingleItem(t *testing.T) {
	sampler := NewBasketSizeSampler(NewSource(1), 0)
	for i := 0; i < 100; i++ {
		if n, _ := sampler.Sample(1); n != 1 {
			t.Fatalf("max 1 must always give 1, got %d", n)
		}
	}
}

func TestBasketSizeRejectsNonPositive(t *testing.T) {
	sampler := NewBasketSizeSampler(NewSource(1), 0)
	for _, max := range []int{0, -2} {
		if _, err := sampler.Sample(max); !errors.Is(err, ErrInvalidCount) {
			t.Errorf("max %d: expected ErrInvalidCount, got %v", max, err)
		}
	}
}

func TestBasketWeights(t *testing.T) {
	w := BasketWeights(7, DefaultBasketScaling)
	sum := 0.0
	for i, v := range w {
		sum += v
		if i > 0 && v >= w[i-1] {
			t.Errorf("weights should strictly decay, w[%d]=%v w[%d]=%v", i-1, w[i-1], i, v)
		}
	}
	if math.Abs(sum-1) > 1e-9 {
		t.Errorf("expected weights to sum to 1, got %v", sum)
	}
	if ratio := w[1] / w[0]; math.Abs(ratio-math.Exp(-0.6)) > 1e-9 {
		t.Errorf("unexpected decay ratio %v", ratio)
	}
}
