package types

import (
	"fmt"
	"time"
)

// Selector picks either every record or an explicit set of keys.
// Callers build it with All, One or Many.
type Selector[T comparable] struct {
	values []T
	set    bool
}

func All[T comparable]() Selector[T] {
	return Selector[T]{}
}

func One[T comparable](v T) Selector[T] {
	return Selector[T]{values: []T{v}, set: true}
}

func Many[T comparable](vs ...T) Selector[T] {
	out := make([]T, len(vs))
	copy(out, vs)
	return Selector[T]{values: out, set: true}
}

func (s Selector[T]) IsAll() bool { return !s.set }

func (s Selector[T]) Values() []T { return s.values }

// Match reports whether v is selected.
func (s Selector[T]) Match(v T) bool {
	if !s.set {
		return true
	}
	for _, want := range s.values {
		if want == v {
			return true
		}
	}
	return false
}

// DateRange is an inclusive range of calendar days. A zero bound is open.
type DateRange struct {
	Start time.Time
	End   time.Time
}

const DateLayout = "2006-01-02"

// Day truncates t to midnight UTC of its calendar day.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ParseDay(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", s, err)
	}
	return t, nil
}

// ParseDateRange parses optional YYYY-MM-DD bounds; empty strings stay open.
func ParseDateRange(start, end string) (DateRange, error) {
	var r DateRange
	var err error
	if start != "" {
		if r.Start, err = ParseDay(start); err != nil {
			return DateRange{}, err
		}
	}
	if end != "" {
		if r.End, err = ParseDay(end); err != nil {
			return DateRange{}, err
		}
	}
	return r, r.Validate()
}

func (r DateRange) Validate() error {
	if !r.Start.IsZero() && !r.End.IsZero() && Day(r.Start).After(Day(r.End)) {
		return fmt.Errorf("start date %s is after end date %s", r.Start.Format(DateLayout), r.End.Format(DateLayout))
	}
	return nil
}

// Contains reports whether t falls on a day inside the range.
func (r DateRange) Contains(t time.Time) bool {
	d := Day(t)
	if !r.Start.IsZero() && d.Before(Day(r.Start)) {
		return false
	}
	if !r.End.IsZero() && d.After(Day(r.End)) {
		return false
	}
	return true
}

type ProductFilter struct {
	SKUs    Selector[string]
	Created DateRange
	Updated DateRange
}

type UserFilter struct {
	IDs     Selector[int64]
	Created DateRange
}

type OrderFilter struct {
	OrderIDs Selector[int64]
	Created  DateRange
}

// Now is the current instant truncated to seconds in UTC, the precision every
// store keeps.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}
