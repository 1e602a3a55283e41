package shop

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Rana718/fakeshop/internal/generator"
	"github.com/Rana718/fakeshop/internal/logger"
	"github.com/Rana718/fakeshop/internal/metrics"
	"github.com/Rana718/fakeshop/internal/store"
	"github.com/Rana718/fakeshop/internal/types"
	"github.com/shopspring/decimal"
)

var (
	ErrNoPrefix     = errors.New("at least one non-empty sku prefix is required")
	ErrNoPricing    = errors.New("pricing must hold at least one positive price")
	ErrUnknownSKU   = errors.New("unknown item sku")
	ErrUnknownUser  = errors.New("unknown user id")
	ErrInvalidPrice = errors.New("price must not be negative")
)

type CreateProductsParams struct {
	// Prefixes holds candidate sku labels; one is drawn per call.
	Prefixes      []string
	PreorderWeeks int
	NumItems      int
	Pricing       []decimal.Decimal
	CreatedAt     time.Time
}

type Products struct {
	store   store.Store
	rng     generator.Source
	pool    *popularityPool
	log     *logger.Logger
	metrics *metrics.Registry
}

func (p *Products) validate(params *CreateProductsParams) error {
	if params.NumItems < 0 {
		return &generator.PreconditionError{Field: "num_items", Value: params.NumItems, Err: generator.ErrInvalidCount}
	}
	prefixes := make([]string, 0, len(params.Prefixes))
	for _, prefix := range params.Prefixes {
		if prefix = strings.TrimSpace(prefix); prefix != "" {
			prefixes = append(prefixes, prefix)
		}
	}
	if len(prefixes) == 0 {
		return ErrNoPrefix
	}
	params.Prefixes = prefixes
	if len(params.Pricing) == 0 {
		return ErrNoPricing
	}
	for _, price := range params.Pricing {
		if !price.IsPositive() {
			return fmt.Errorf("%w: got %s", ErrNoPricing, price)
		}
	}
	if params.PreorderWeeks < 0 {
		return &generator.PreconditionError{Field: "preorder_weeks", Value: params.PreorderWeeks, Err: generator.ErrInvalidCount}
	}
	return nil
}

// Create adds NumItems products under one prefix. NumItems 0 is a no-op.
// Every product's popularity is renormalised afterwards.
func (p *Products) Create(ctx context.Context, params CreateProductsParams) ([]types.Product, error) {
	if params.NumItems == 0 {
		p.log.Debug("Skipping product creation", "num_items", 0)
		return nil, nil
	}
	if err := p.validate(&params); err != nil {
		return nil, err
	}

	createdAt := params.CreatedAt.UTC()
	if params.CreatedAt.IsZero() {
		createdAt = types.Now()
	}
	prefix := params.Prefixes[p.rng.Intn(len(params.Prefixes))]

	index, err := p.store.CountSKUPrefix(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("failed to get sku index: %w", err)
	}
	ceiling, err := p.pool.ceiling(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get popularity upper limit: %w", err)
	}

	products := make([]types.Product, 0, params.NumItems)
	for i := 0; i < params.NumItems; i++ {
		products = append(products, types.Product{
			SKU:         fmt.Sprintf("%s%03d", prefix, index+1+i),
			Price:       params.Pricing[p.rng.Intn(len(params.Pricing))],
			ReleaseDate: createdAt.AddDate(0, 0, 7*params.PreorderWeeks),
			CreatedAt:   createdAt,
			UpdatedAt:   createdAt,
			Active:      true,
			Popularity:  p.pool.draw(ceiling),
		})
	}

	if err := p.store.InsertProducts(ctx, products); err != nil {
		return nil, err
	}
	if err := p.pool.normalise(ctx); err != nil {
		return nil, fmt.Errorf("failed to normalise product popularity: %w", err)
	}

	p.metrics.ProductsCreated.Add(float64(len(products)))
	p.log.Info("Created products", "count", len(products), "prefix", prefix, "first_sku", products[0].SKU)
	return products, nil
}

// Update changes price and active flags. Every sku must already exist.
func (p *Products) Update(ctx context.Context, updates []types.ProductUpdate) (int, error) {
	if len(updates) == 0 {
		return 0, nil
	}
	skus := make([]string, len(updates))
	for i, u := range updates {
		if u.Price != nil && u.Price.IsNegative() {
			return 0, fmt.Errorf("%w: %s for %s", ErrInvalidPrice, u.Price, u.SKU)
		}
		skus[i] = u.SKU
	}

	existing, err := p.store.Products(ctx, types.ProductFilter{SKUs: types.Many(skus...)})
	if err != nil {
		return 0, fmt.Errorf("failed to look up products: %w", err)
	}
	found := make(map[string]bool, len(existing))
	for _, e := range existing {
		found[e.SKU] = true
	}
	var missing []string
	for _, sku := range skus {
		if !found[sku] {
			missing = append(missing, sku)
		}
	}
	if len(missing) > 0 {
		return 0, fmt.Errorf("%w: %s", ErrUnknownSKU, strings.Join(missing, ", "))
	}

	n, err := p.store.UpdateProducts(ctx, updates)
	if err != nil {
		return 0, err
	}
	p.log.Info("Updated products", "count", n)
	return n, nil
}
