package shop

import (
	"context"
	"fmt"
	"time"

	"github.com/Rana718/fakeshop/internal/generator"
	"github.com/Rana718/fakeshop/internal/types"
)

// Exporter writes the reports of one run.
type Exporter interface {
	ExportAll(ctx context.Context, dates types.DateRange, stamp string) error
}

type DailyRunParams struct {
	Date time.Time
	// ForceProducts creates products even when Date is not ReleaseWeekday.
	ForceProducts  bool
	ReleaseWeekday time.Weekday

	// Products is the template for new products; NumItems and CreatedAt are
	// filled by the run.
	Products           CreateProductsParams
	ItemsMin, ItemsMax int

	OrdersMin, OrdersMax int
	MaxItemsPerOrder     int
}

type DailyRunResult struct {
	Date      time.Time
	Products  []types.Product
	NumOrders int
	Lines     []types.OrderLine
}

// DailyRun is the scheduled job: new products on release day, a random
// number of orders for Date, then an export of that day.
func (s *Shop) DailyRun(ctx context.Context, params DailyRunParams, exporter Exporter) (*DailyRunResult, error) {
	if params.ItemsMin > params.ItemsMax || params.OrdersMin > params.OrdersMax {
		return nil, fmt.Errorf("invalid run bounds: items %d..%d, orders %d..%d",
			params.ItemsMin, params.ItemsMax, params.OrdersMin, params.OrdersMax)
	}
	date := params.Date
	if date.IsZero() {
		date = time.Now()
	}
	day := types.Day(date)
	result := &DailyRunResult{Date: day}

	if params.ForceProducts || day.Weekday() == params.ReleaseWeekday {
		create := params.Products
		create.NumItems = between(s.rng, params.ItemsMin, params.ItemsMax)
		create.CreatedAt = day
		products, err := s.Products.Create(ctx, create)
		if err != nil {
			return nil, fmt.Errorf("failed to create products: %w", err)
		}
		result.Products = products
	}

	result.NumOrders = between(s.rng, params.OrdersMin, params.OrdersMax)
	lines, err := s.Orders.Create(ctx, CreateOrdersParams{
		NumOrders: result.NumOrders,
		MaxItems:  params.MaxItemsPerOrder,
		Dates:     types.DateRange{Start: day, End: day},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create orders: %w", err)
	}
	result.Lines = lines

	if exporter != nil {
		if err := exporter.ExportAll(ctx, types.DateRange{Start: day, End: day}, day.Format(types.DateLayout)); err != nil {
			return nil, fmt.Errorf("failed to export run: %w", err)
		}
	}

	counts, err := s.Stats(ctx)
	if err == nil {
		s.log.Info("Daily run finished",
			"date", day.Format(types.DateLayout),
			"new_products", len(result.Products),
			"orders", result.NumOrders,
			"total_products", counts.Products,
			"total_users", counts.Users,
			"total_orders", counts.Orders,
		)
	}
	return result, nil
}

// between draws uniformly from [lo, hi].
func between(rng generator.Source, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo+1)
}
