package types

import (
	"testing"
	"time"
)

func TestSelector(t *testing.T) {
	all := All[string]()
	if !all.IsAll() || !all.Match("anything") {
		t.Error("All should match every value")
	}

	one := One[int64](7)
	if one.IsAll() || !one.Match(7) || one.Match(8) {
		t.Errorf("One(7) matched incorrectly")
	}

	src := []string{"A", "B"}
	many := Many(src...)
	src[0] = "Z"
	if !many.Match("A") || many.Match("Z") {
		t.Error("Many should copy its input")
	}

	none := Many[int64]()
	if none.IsAll() || none.Match(1) {
		t.Error("an empty explicit selection should match nothing")
	}
}

func TestParseDateRange(t *testing.T) {
	r, err := ParseDateRange("2024-01-01", "2024-01-31")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !r.Contains(time.Date(2024, 1, 31, 23, 59, 0, 0, time.UTC)) {
		t.Error("end day should be inclusive")
	}
	if r.Contains(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)) {
		t.Error("day after end should be excluded")
	}

	open, err := ParseDateRange("", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !open.Contains(time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Error("open range should contain every date")
	}

	if _, err := ParseDateRange("2024-02-01", "2024-01-01"); err == nil {
		t.Error("expected error for inverted range")
	}
	if _, err := ParseDateRange("01/02/2024", ""); err == nil {
		t.Error("expected error for non ISO date")
	}
}

func TestDay(t *testing.T) {
	loc := time.FixedZone("plus5", 5*3600)
	got := Day(time.Date(2024, 3, 9, 22, 15, 0, 0, loc))
	want := time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("Day() = %s, want %s", got, want)
	}
}
