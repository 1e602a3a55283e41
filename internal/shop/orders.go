package shop

import (
	"context"
	"fmt"
	"time"

	"github.com/Rana718/fakeshop/internal/generator"
	"github.com/Rana718/fakeshop/internal/logger"
	"github.com/Rana718/fakeshop/internal/metrics"
	"github.com/Rana718/fakeshop/internal/store"
	"github.com/Rana718/fakeshop/internal/types"
)

type CreateOrdersParams struct {
	NumOrders int
	MaxItems  int
	Dates     types.DateRange
}

type Orders struct {
	store   store.Store
	users   *Users
	gen     *generator.BatchGenerator
	log     *logger.Logger
	metrics *metrics.Registry
}

// Create generates NumOrders orders over Dates and stores their lines.
// NumOrders 0 is a no-op. New customers are registered along the way.
func (o *Orders) Create(ctx context.Context, params CreateOrdersParams) ([]types.OrderLine, error) {
	if params.NumOrders == 0 {
		o.log.Debug("Skipping order creation", "num_orders", 0)
		return nil, nil
	}

	catalogue, err := o.store.FetchCatalogue(ctx)
	if err != nil {
		return nil, err
	}
	pool, err := o.store.FetchUserPool(ctx)
	if err != nil {
		return nil, err
	}
	lastID, ok, err := o.store.LastOrderID(ctx)
	if err != nil {
		return nil, err
	}
	o.log.Debug("Last order id", "order_id", lastID, "found", ok)

	started := time.Now()
	batch, err := o.gen.Generate(ctx, generator.BatchRequest{
		NumOrders:   params.NumOrders,
		MaxItems:    params.MaxItems,
		Catalogue:   catalogue,
		UserPool:    pool,
		Users:       o.users,
		Dates:       params.Dates,
		LastOrderID: lastID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate orders: %w", err)
	}
	o.metrics.GenerationSec.Observe(time.Since(started).Seconds())

	ids, err := o.store.InsertOrders(ctx, batch.Lines)
	if err != nil {
		return nil, err
	}
	for i := range batch.Lines {
		batch.Lines[i].LineID = ids[i]
	}

	o.metrics.OrdersGenerated.Add(float64(params.NumOrders))
	o.metrics.LinesGenerated.Add(float64(len(batch.Lines)))
	o.metrics.ObserveBasketSizes(batch.BasketSizes)
	o.log.Info("Added order lines",
		"run_id", batch.RunID.String(),
		"orders", params.NumOrders,
		"lines", len(batch.Lines),
		"first_order_id", batch.FirstOrderID,
		"last_order_id", batch.LastOrderID,
		"returning_users", batch.ReturningUsers,
		"new_users", batch.NewUsers,
	)
	return batch.Lines, nil
}
