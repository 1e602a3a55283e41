package generator

import (
	"time"

	"github.com/Rana718/fakeshop/internal/types"
)

// DateSpreader spreads events over a day range with jittered per-day counts
// that always add up to the requested total.
type DateSpreader struct {
	rng Source
}

func NewDateSpreader(rng Source) *DateSpreader {
	return &DateSpreader{rng: rng}
}

// Spread returns total dates in chronological order. One bucket is used per
// day from start, (end - start) buckets in all; start == end puts every event
// on start.
func (d *DateSpreader) Spread(total int, start, end time.Time) ([]time.Time, error) {
	if total < 0 {
		return nil, precondition("total_events", total, ErrInvalidCount)
	}
	start, end = types.Day(start), types.Day(end)
	dayCount := int(end.Sub(start).Hours() / 24)
	if dayCount < 0 {
		return nil, precondition("date_range",
			start.Format(types.DateLayout)+".."+end.Format(types.DateLayout), ErrInvalidDateRange)
	}

	dates := make([]time.Time, 0, total)
	if dayCount == 0 {
		for i := 0; i < total; i++ {
			dates = append(dates, start)
		}
		return dates, nil
	}

	for day, count := range d.buckets(total, dayCount) {
		date := start.AddDate(0, 0, day)
		for i := 0; i < count; i++ {
			dates = append(dates, date)
		}
	}
	return dates, nil
}

func (d *DateSpreader) buckets(total, dayCount int) []int {
	base := total / dayCount
	half := base / 2

	buckets := make([]int, dayCount)
	sum := 0
	for i := range buckets {
		buckets[i] = base + uniformInt(d.rng, -half, half)
		sum += buckets[i]
	}

	difference := total - sum
	switch {
	case difference > 0:
		for i := 0; i < difference; i++ {
			buckets[d.rng.Intn(dayCount)]++
		}
	case difference < 0:
		// Only decrement days that still have events so no count goes negative.
		positive := make([]int, 0, dayCount)
		for i, c := range buckets {
			if c > 0 {
				positive = append(positive, i)
			}
		}
		for i := 0; i < -difference; i++ {
			j := d.rng.Intn(len(positive))
			idx := positive[j]
			buckets[idx]--
			if buckets[idx] == 0 {
				positive[j] = positive[len(positive)-1]
				positive = positive[:len(positive)-1]
			}
		}
	}
	return buckets
}
