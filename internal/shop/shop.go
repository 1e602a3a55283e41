// Package shop ties the generators to a store: it creates products, users and
// orders the way a live web shop would accumulate them.
package shop

import (
	"context"
	"fmt"

	"github.com/Rana718/fakeshop/internal/faker"
	"github.com/Rana718/fakeshop/internal/generator"
	"github.com/Rana718/fakeshop/internal/logger"
	"github.com/Rana718/fakeshop/internal/metrics"
	"github.com/Rana718/fakeshop/internal/store"
	"github.com/Rana718/fakeshop/internal/types"
)

type Options struct {
	Locales               []string
	PopularityMultiplier  float64
	ReturningUserRatioMax float64
	BasketScaling         float64
}

type Shop struct {
	Products *Products
	Users    *Users
	Orders   *Orders

	store   store.Store
	rng     generator.Source
	log     *logger.Logger
	metrics *metrics.Registry
}

func New(st store.Store, rng generator.Source, opts Options, log *logger.Logger, reg *metrics.Registry) (*Shop, error) {
	if log == nil {
		log = logger.Nop()
	}
	if reg == nil {
		reg = metrics.NewRegistry()
	}

	profiles, err := faker.NewProfileProvider(opts.Locales, rng)
	if err != nil {
		return nil, fmt.Errorf("failed to set up user profiles: %w", err)
	}
	model := generator.NewPopularity(rng, opts.PopularityMultiplier)

	products := &Products{
		store:   st,
		rng:     rng,
		pool:    newPopularityPool(st, types.KindProducts, model, log),
		log:     log.With("component", "Products"),
		metrics: reg,
	}
	users := &Users{
		store:    st,
		profiles: profiles,
		pool:     newPopularityPool(st, types.KindUsers, model, log),
		log:      log.With("component", "Users"),
		metrics:  reg,
	}
	orders := &Orders{
		store: st,
		users: users,
		gen: generator.NewBatchGenerator(rng, generator.BatchOptions{
			ReturningUserRatioMax: opts.ReturningUserRatioMax,
			BasketScaling:         opts.BasketScaling,
		}, log),
		log:     log.With("component", "Orders"),
		metrics: reg,
	}

	return &Shop{
		Products: products,
		Users:    users,
		Orders:   orders,
		store:    st,
		rng:      rng,
		log:      log,
		metrics:  reg,
	}, nil
}

func (s *Shop) Stats(ctx context.Context) (types.Counts, error) {
	counts, err := s.store.Counts(ctx)
	if err != nil {
		return types.Counts{}, fmt.Errorf("failed to count shop data: %w", err)
	}
	return counts, nil
}

// popularityPool keeps one population's weights summing to 1.
type popularityPool struct {
	store store.Store
	kind  types.Kind
	model *generator.Popularity
	log   *logger.Logger
}

func newPopularityPool(st store.Store, kind types.Kind, model *generator.Popularity, log *logger.Logger) *popularityPool {
	return &popularityPool{store: st, kind: kind, model: model, log: log.With("kind", string(kind))}
}

// ceiling is the upper bound for new entries' starting popularity.
func (p *popularityPool) ceiling(ctx context.Context) (float64, error) {
	highest, err := p.store.MaxPopularity(ctx, p.kind)
	if err != nil {
		return 0, err
	}
	limit := p.model.UpperLimit(highest)
	p.log.Debug("Popularity upper limit", "max_existing", highest, "upper_limit", limit)
	return limit, nil
}

func (p *popularityPool) draw(ceiling float64) float64 {
	return p.model.AssignInitial(ceiling)
}

func (p *popularityPool) normalise(ctx context.Context) error {
	sum, err := p.store.SumPopularity(ctx, p.kind)
	if err != nil {
		return err
	}
	factor, ok := generator.NormalizationFactor(sum)
	if !ok {
		p.log.Warn("Skipping popularity normalisation", "sum", sum)
		return nil
	}
	if err := p.store.ScalePopularity(ctx, p.kind, factor); err != nil {
		return err
	}
	p.log.Debug("Normalised popularity scores", "previous_sum", sum)
	return nil
}
