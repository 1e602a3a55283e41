package generator

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/Rana718/fakeshop/internal/logger"
	"github.com/Rana718/fakeshop/internal/types"
	"github.com/google/uuid"
)

const DefaultReturningUserRatioMax = 0.1

// UserSource supplies returning users and creates new ones for a batch.
type UserSource interface {
	SampleExisting(ctx context.Context, n int) ([]types.UserRef, error)
	Create(ctx context.Context, n int, createdAt time.Time) ([]types.UserRef, error)
}

type BatchRequest struct {
	NumOrders int
	MaxItems  int
	Catalogue []types.CatalogueEntry
	// UserPool is the snapshot of existing users.
	UserPool []types.UserRef
	// Users, when set, mixes returning and new users. Without it every order
	// goes to a pool user drawn by popularity.
	Users       UserSource
	Dates       types.DateRange
	LastOrderID int64
}

type Batch struct {
	RunID          uuid.UUID
	Lines          []types.OrderLine
	FirstOrderID   int64
	LastOrderID    int64
	ReturningUsers int
	NewUsers       int
	BasketSizes    []int
}

type BatchOptions struct {
	ReturningUserRatioMax float64
	BasketScaling         float64
}

type BatchGenerator struct {
	rng      Source
	opts     BatchOptions
	composer *OrderComposer
	spreader *DateSpreader
	log      *logger.Logger
}

func NewBatchGenerator(rng Source, opts BatchOptions, log *logger.Logger) *BatchGenerator {
	if opts.ReturningUserRatioMax <= 0 {
		opts.ReturningUserRatioMax = DefaultReturningUserRatioMax
	}
	if log == nil {
		log = logger.Nop()
	}
	return &BatchGenerator{
		rng:      rng,
		opts:     opts,
		composer: NewOrderComposer(rng, NewBasketSizeSampler(rng, opts.BasketScaling)),
		spreader: NewDateSpreader(rng),
		log:      log.With("component", "BatchGenerator"),
	}
}

func (g *BatchGenerator) validate(req *BatchRequest) error {
	if req.NumOrders <= 0 {
		return precondition("num_orders", req.NumOrders, ErrInvalidCount)
	}
	if req.MaxItems <= 0 {
		return precondition("max_items_per_order", req.MaxItems, ErrInvalidCount)
	}
	if len(req.Catalogue) == 0 {
		return precondition("catalogue", 0, ErrNoProducts)
	}
	if len(req.UserPool) == 0 && req.Users == nil {
		return precondition("user_pool", 0, ErrNoUsers)
	}
	if req.Dates.Start.IsZero() {
		return precondition("date_range", "missing start", ErrInvalidDateRange)
	}
	if req.Dates.End.IsZero() {
		req.Dates.End = req.Dates.Start
	}
	if types.Day(req.Dates.Start).After(types.Day(req.Dates.End)) {
		return precondition("date_range",
			req.Dates.Start.Format(types.DateLayout)+".."+req.Dates.End.Format(types.DateLayout), ErrInvalidDateRange)
	}
	return nil
}

// Generate builds NumOrders orders with ids LastOrderID+1 onwards and returns
// their lines flat, in generation order.
func (g *BatchGenerator) Generate(ctx context.Context, req BatchRequest) (*Batch, error) {
	if err := g.validate(&req); err != nil {
		return nil, err
	}

	catalogue, err := NewCatalogue(req.Catalogue)
	if err != nil {
		return nil, err
	}

	batch := &Batch{
		RunID:        uuid.New(),
		FirstOrderID: req.LastOrderID + 1,
		LastOrderID:  req.LastOrderID + int64(req.NumOrders),
		BasketSizes:  make([]int, 0, req.NumOrders),
	}

	userIDs, err := g.assignUsers(ctx, &req, batch)
	if err != nil {
		return nil, err
	}

	dates, err := g.spreader.Spread(req.NumOrders, req.Dates.Start, req.Dates.End)
	if err != nil {
		return nil, err
	}

	for i := 0; i < req.NumOrders; i++ {
		basket, err := g.composer.Compose(catalogue, req.MaxItems)
		if err != nil {
			return nil, err
		}
		batch.BasketSizes = append(batch.BasketSizes, basket.Size)

		orderID := batch.FirstOrderID + int64(i)
		for _, line := range basket.Lines {
			batch.Lines = append(batch.Lines, types.OrderLine{
				OrderID:   orderID,
				UserID:    userIDs[i],
				SKU:       line.SKU,
				Qty:       line.Qty,
				UnitPrice: catalogue.Price(line.SKU),
				CreatedAt: dates[i],
			})
		}
	}

	g.log.Debug("Generated order batch",
		"run_id", batch.RunID.String(),
		"orders", req.NumOrders,
		"lines", len(batch.Lines),
		"first_order_id", batch.FirstOrderID,
		"returning_users", batch.ReturningUsers,
		"new_users", batch.NewUsers,
	)
	return batch, nil
}

func (g *BatchGenerator) assignUsers(ctx context.Context, req *BatchRequest, batch *Batch) ([]int64, error) {
	ids := make([]int64, 0, req.NumOrders)

	if req.Users == nil {
		poolIDs := make([]int64, len(req.UserPool))
		weights := make([]float64, len(req.UserPool))
		for i, u := range req.UserPool {
			poolIDs[i] = u.ID
			weights[i] = u.Popularity
		}
		set, err := NewWeightedSet(poolIDs, weights)
		if err != nil {
			return nil, err
		}
		for i := 0; i < req.NumOrders; i++ {
			ids = append(ids, set.Pick(g.rng))
		}
		batch.ReturningUsers = req.NumOrders
		return ids, nil
	}

	ratio := g.rng.Float64() * g.opts.ReturningUserRatioMax
	numReturning := int(math.Round(float64(req.NumOrders) * ratio))
	if numReturning > len(req.UserPool) {
		numReturning = len(req.UserPool)
	}

	if numReturning > 0 {
		returning, err := req.Users.SampleExisting(ctx, numReturning)
		if err != nil {
			return nil, fmt.Errorf("failed to sample existing users: %w", err)
		}
		for _, u := range returning {
			ids = append(ids, u.ID)
		}
	}
	batch.ReturningUsers = len(ids)

	numNew := req.NumOrders - len(ids)
	if numNew > 0 {
		created, err := req.Users.Create(ctx, numNew, types.Day(req.Dates.Start))
		if err != nil {
			return nil, fmt.Errorf("failed to create users: %w", err)
		}
		if len(created) != numNew {
			return nil, fmt.Errorf("user source created %d users, expected %d", len(created), numNew)
		}
		for _, u := range created {
			ids = append(ids, u.ID)
		}
	}
	batch.NewUsers = numNew

	g.rng.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })
	return ids, nil
}
