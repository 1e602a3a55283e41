package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/Rana718/fakeshop/internal/store/memstore"
	"github.com/Rana718/fakeshop/internal/store/sqlstore"
	"github.com/Rana718/fakeshop/internal/types"
)

// Store is the persistence boundary of the shop. Implementations must make
// InsertOrders all-or-nothing.
type Store interface {
	EnsureSchema(ctx context.Context) error

	// FetchCatalogue returns every active product with its price and popularity.
	FetchCatalogue(ctx context.Context) ([]types.CatalogueEntry, error)
	FetchUserPool(ctx context.Context) ([]types.UserRef, error)
	// LastOrderID reports false when no order exists yet.
	LastOrderID(ctx context.Context) (int64, bool, error)
	// SampleExistingUsers draws up to n distinct users uniformly.
	SampleExistingUsers(ctx context.Context, n int) ([]types.UserRef, error)

	MaxPopularity(ctx context.Context, kind types.Kind) (float64, error)
	SumPopularity(ctx context.Context, kind types.Kind) (float64, error)
	ScalePopularity(ctx context.Context, kind types.Kind, factor float64) error
	CountSKUPrefix(ctx context.Context, prefix string) (int, error)

	InsertProducts(ctx context.Context, products []types.Product) error
	InsertUsers(ctx context.Context, users []types.User) ([]int64, error)
	InsertOrders(ctx context.Context, lines []types.OrderLine) ([]int64, error)
	UpdateProducts(ctx context.Context, updates []types.ProductUpdate) (int, error)
	UpdateUsers(ctx context.Context, updates []types.UserUpdate) (int, error)

	Products(ctx context.Context, filter types.ProductFilter) ([]types.Product, error)
	Users(ctx context.Context, filter types.UserFilter) ([]types.User, error)
	Orders(ctx context.Context, filter types.OrderFilter) ([]types.OrderLine, error)
	Counts(ctx context.Context) (types.Counts, error)

	Close() error
}

var (
	_ Store = (*memstore.Store)(nil)
	_ Store = (*sqlstore.Store)(nil)
)

var ErrUnsupportedProvider = errors.New("unsupported database provider")

type Options struct {
	Provider string
	URL      string
	// Driver picks the postgres driver: "pgx" (default) or "pq".
	Driver string
	Seed   int64
}

// Open connects to the configured database. Provider "memory" returns an
// empty in-process store.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Provider {
	case "memory":
		return memstore.New(opts.Seed), nil
	case "postgresql", "postgres", "mysql", "sqlite", "sqlite3":
		s, err := sqlstore.Open(ctx, opts.Provider, opts.Driver, opts.URL)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedProvider, opts.Provider)
	}
}
