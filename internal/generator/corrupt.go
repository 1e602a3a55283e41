package generator

import (
	"time"

	"github.com/Rana718/fakeshop/internal/types"
)

const (
	dateRewriteChance = 0.05
	nullFieldChance   = 0.10
	duplicateChance   = 0.02

	// Only price and date of an order row may be blanked.
	nullableFrom = types.OrderColPrice
	nullableTo   = types.OrderColCreatedAt
)

var messyDateLayouts = [2]string{"02/01/2006", "02-01-2006"}

// DataCorruptor makes export copies of order rows look like dirty real data.
// It must only ever see export copies, never stored rows.
type DataCorruptor struct {
	rng Source
}

func NewDataCorruptor(rng Source) *DataCorruptor {
	return &DataCorruptor{rng: rng}
}

// Corrupt returns at least len(rows) rows. Checks run per row in a fixed
// order: date rewrite, blank field, duplicate. Input rows are not modified.
func (c *DataCorruptor) Corrupt(rows []types.Row) []types.Row {
	out := make([]types.Row, 0, len(rows))
	for _, row := range rows {
		messy := append(types.Row(nil), row...)

		if c.rng.Float64() < dateRewriteChance {
			layout := messyDateLayouts[0]
			if c.rng.Float64() >= 0.5 {
				layout = messyDateLayouts[1]
			}
			messy[types.OrderColCreatedAt] = rewriteDate(messy[types.OrderColCreatedAt], layout)
		}

		if c.rng.Float64() < nullFieldChance {
			messy[uniformInt(c.rng, nullableFrom, nullableTo)] = nil
		}

		if c.rng.Float64() < duplicateChance {
			out = append(out, append(types.Row(nil), messy...))
		}
		out = append(out, messy)
	}
	return out
}

func rewriteDate(v any, layout string) any {
	switch t := v.(type) {
	case time.Time:
		return t.Format(layout)
	case string:
		for _, in := range []string{time.RFC3339, "2006-01-02 15:04:05", types.DateLayout} {
			if parsed, err := time.Parse(in, t); err == nil {
				return parsed.Format(layout)
			}
		}
	}
	return v
}
