package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/Rana718/fakeshop/internal/config"
	"github.com/Rana718/fakeshop/internal/export"
	"github.com/Rana718/fakeshop/internal/generator"
	"github.com/Rana718/fakeshop/internal/logger"
	"github.com/Rana718/fakeshop/internal/metrics"
	"github.com/Rana718/fakeshop/internal/shop"
	"github.com/Rana718/fakeshop/internal/store"
	"github.com/Rana718/fakeshop/internal/types"
	"github.com/fatih/color"
)

// app bundles everything a command needs. close releases it.
type app struct {
	cfg     *config.Config
	log     *logger.Logger
	store   store.Store
	shop    *shop.Shop
	metrics *metrics.Registry
	rng     generator.Source
	closers []func() error
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	path := profileFile
	if path == "" {
		path = cfg.Generator.Profile
	}
	if path != "" {
		profile, err := config.LoadProfile(path)
		if err != nil {
			return nil, err
		}
		profile.Apply(cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.Log.Mode, cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	opts := store.Options{
		Provider: cfg.StoreProvider(dryRun),
		Driver:   cfg.Database.Driver,
		Seed:     cfg.Generator.Seed,
	}
	if !dryRun {
		if opts.URL, err = cfg.GetDatabaseURL(); err != nil {
			return nil, err
		}
	} else {
		color.Yellow("🧪 Dry run: using an in-memory store, nothing is persisted")
	}

	st, err := store.Open(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if dryRun {
		if err := st.EnsureSchema(ctx); err != nil {
			st.Close()
			return nil, err
		}
	}

	reg := metrics.NewRegistry()
	rng := generator.NewSource(cfg.Generator.Seed)
	s, err := shop.New(st, rng, shop.Options{
		Locales:               cfg.Generator.Locales,
		PopularityMultiplier:  cfg.Generator.PopularityMultiplier,
		ReturningUserRatioMax: cfg.Generator.ReturningUserRatioMax,
		BasketScaling:         cfg.Generator.BasketScaling,
	}, log, reg)
	if err != nil {
		st.Close()
		return nil, err
	}

	return &app{
		cfg:     cfg,
		log:     log,
		store:   st,
		shop:    s,
		metrics: reg,
		rng:     rng,
		closers: []func() error{st.Close},
	}, nil
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.log.Warn("Failed to close resource", "error", err)
		}
	}
	a.log.Sync()
}

// exporter builds the sinks enabled in config. localDir overrides
// export.local_dir when set.
func (a *app) exporter(ctx context.Context, messy bool, localDir string) (*export.Exporter, error) {
	var sinks []export.Sink
	ec := a.cfg.Export

	if ec.Local || localDir != "" {
		dir := ec.LocalDir
		if localDir != "" {
			dir = localDir
		}
		sinks = append(sinks, export.NewFileSink(dir))
	}
	if ec.CloudStorage {
		gcs, err := export.NewGCSSink(ctx, ec.Bucket, ec.EmulatorHost)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, gcs.Close)
		sinks = append(sinks, gcs)
	}
	if ec.Kafka.Brokers != "" {
		k := export.NewKafkaSink(ec.Kafka.Brokers, ec.Kafka.Topic)
		a.closers = append(a.closers, k.Close)
		sinks = append(sinks, k)
	}
	if len(sinks) == 0 {
		return nil, fmt.Errorf("no export sink enabled, set export.local, export.cloud_storage or export.kafka.brokers")
	}

	return export.NewExporter(a.store, sinks, export.Options{Messy: messy, Rand: a.rng}, a.metrics, a.log), nil
}

func (a *app) productParams(createdAt time.Time) (shop.CreateProductsParams, error) {
	pricing, err := a.cfg.PricingDecimals()
	if err != nil {
		return shop.CreateProductsParams{}, err
	}
	return shop.CreateProductsParams{
		Prefixes:      a.cfg.Products.LabelPrefixes,
		PreorderWeeks: a.cfg.Products.PreorderWeeks,
		Pricing:       pricing,
		CreatedAt:     createdAt,
	}, nil
}

// parseDay accepts YYYY-MM-DD or "" for today.
func parseDay(s string) (time.Time, error) {
	if s == "" {
		return types.Day(time.Now()), nil
	}
	return types.ParseDay(s)
}
