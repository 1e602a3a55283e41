package generator

import (
	"errors"
	"math"
	"testing"
)

func TestUpperLimit(t *testing.T) {
	p := NewPopularity(NewSource(1), 0)

	if got := p.UpperLimit(); got != 1.0 {
		t.Errorf("empty population: expected 1.0, got %v", got)
	}
	if got := p.UpperLimit(0, 0); got != 1.0 {
		t.Errorf("all-zero population: expected 1.0, got %v", got)
	}
	if got := p.UpperLimit(0.2, 0.5, 0.1); math.Abs(got-0.75) > 1e-12 {
		t.Errorf("expected 0.75, got %v", got)
	}

	custom := NewPopularity(NewSource(1), 2)
	if got := custom.UpperLimit(0.5); got != 1.0 {
		t.Errorf("multiplier 2: expected 1.0, got %v", got)
	}
}

func TestAssignInitialStaysBelowCeiling(t *testing.T) {
	p := NewPopularity(NewSource(7), 0)
	for i := 0; i < 1000; i++ {
		v := p.AssignInitial(0.3)
		if v < 0 || v >= 0.3 {
			t.Fatalf("draw %d out of [0, 0.3): %v", i, v)
		}
	}
}

func TestNormalizeSumsToOne(t *testing.T) {
	scores := map[string]float64{"a": 3, "b": 1, "c": 0, "d": 6}
	got := Normalize(scores)

	sum := 0.0
	for _, w := range got {
		if w < 0 {
			t.Fatalf("negative weight after normalisation: %v", got)
		}
		sum += w
	}
	if math.Abs(sum-1) > 1e-9 {
		t.Errorf("expected weights to sum to 1, got %v", sum)
	}
	if math.Abs(got["d"]-0.6) > 1e-12 {
		t.Errorf("expected d=0.6, got %v", got["d"])
	}
	if scores["d"] != 6 {
		t.Errorf("input map was modified: %v", scores)
	}
}

func TestNormalizeNoOp(t *testing.T) {
	empty := map[int64]float64{}
	if got := Normalize(empty); len(got) != 0 {
		t.Errorf("expected empty output, got %v", got)
	}

	zero := map[string]float64{"a": 0, "b": 0}
	got := Normalize(zero)
	if len(got) != 2 || got["a"] != 0 || got["b"] != 0 {
		t.Errorf("zero-sum input should come back unchanged, got %v", got)
	}
}

func TestNormalizationFactor(t *testing.T) {
	if _, ok := NormalizationFactor(0); ok {
		t.Error("zero sum should not normalise")
	}
	if _, ok := NormalizationFactor(math.NaN()); ok {
		t.Error("NaN sum should not normalise")
	}
	f, ok := NormalizationFactor(4)
	if !ok || f != 0.25 {
		t.Errorf("expected 0.25, got %v (%v)", f, ok)
	}
}

func TestWeightedSetSkipsZeroWeights(t *testing.T) {
	rng := NewSource(3)

	first, err := NewWeightedSet([]string{"A", "B"}, []float64{1, 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	last, err := NewWeightedSet([]string{"A", "B"}, []float64{0, 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := 0; i < 5000; i++ {
		if got := first.Pick(rng); got != "A" {
			t.Fatalf("zero-weight key B was picked")
		}
		if got := last.Pick(rng); got != "B" {
			t.Fatalf("zero-weight key A was picked")
		}
	}
}

func TestWeightedSetFollowsWeights(t *testing.T) {
	rng := NewSource(11)
	set, err := NewWeightedSet([]int{1, 2, 3}, []float64{0.7, 0.2, 0.1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	counts := map[int]int{}
	const draws = 20000
	for i := 0; i < draws; i++ {
		counts[set.Pick(rng)]++
	}
	if !(counts[1] > counts[2] && counts[2] > counts[3]) {
		t.Errorf("expected frequencies to follow weights, got %v", counts)
	}
	if share := float64(counts[1]) / draws; math.Abs(share-0.7) > 0.03 {
		t.Errorf("expected key 1 near 70%%, got %.3f", share)
	}
}

func TestWeightedSetZeroTotalFallsBackToUniform(t *testing.T) {
	rng := NewSource(5)
	set, _ := NewWeightedSet([]string{"x", "y"}, []float64{0, 0})

	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		seen[set.Pick(rng)] = true
	}
	if !seen["x"] || !seen["y"] {
		t.Errorf("expected both keys from uniform fallback, got %v", seen)
	}
}

func TestWeightedSetLengthMismatch(t *testing.T) {
	if _, err := NewWeightedSet([]string{"a"}, []float64{1, 2}); err == nil {
		t.Error("expected error for mismatched lengths")
	}
}

func TestPreconditionErrorNamesField(t *testing.T) {
	err := precondition("num_orders", -3, ErrInvalidCount)
	if !errors.Is(err, ErrInvalidCount) {
		t.Errorf("expected errors.Is to match ErrInvalidCount")
	}
	want := "invalid num_orders (-3): must be greater than zero"
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}
}
