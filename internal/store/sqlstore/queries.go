package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/Rana718/fakeshop/internal/types"
)

var (
	productColumns = []string{"item_sku", "item_price", "release_date", "date_created", "date_updated", "active", "item_popularity"}
	userColumns    = []string{"user_id", "user_name", "user_address", "user_country", "user_email", "date_created", "date_updated", "user_popularity"}
	orderColumns   = []string{"order_line_id", "order_id", "user_id", "item_sku", "qty", "item_price", "date_created"}
)

// popularityColumn maps a population to its table and weight column.
func popularityColumn(kind types.Kind) (table, column string, err error) {
	switch kind {
	case types.KindProducts:
		return "products", "item_popularity", nil
	case types.KindUsers:
		return "users", "user_popularity", nil
	default:
		return "", "", fmt.Errorf("unknown popularity kind %q", kind)
	}
}

// dayRange turns an inclusive day range into half-open timestamp bounds.
func dayRange(column string, r types.DateRange) squirrel.And {
	cond := squirrel.And{}
	if !r.Start.IsZero() {
		cond = append(cond, squirrel.GtOrEq{column: types.Day(r.Start)})
	}
	if !r.End.IsZero() {
		cond = append(cond, squirrel.Lt{column: types.Day(r.End).AddDate(0, 0, 1)})
	}
	return cond
}

func (s *Store) query(ctx context.Context, b squirrel.SelectBuilder) (*sql.Rows, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}
	return s.db.QueryContext(ctx, query, args...)
}

func (s *Store) scalar(ctx context.Context, b squirrel.SelectBuilder, dest any) error {
	query, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}
	return s.db.QueryRowContext(ctx, query, args...).Scan(dest)
}

func scanProduct(rows *sql.Rows) (types.Product, error) {
	var p types.Product
	err := rows.Scan(&p.SKU, &p.Price, &p.ReleaseDate, &p.CreatedAt, &p.UpdatedAt, &p.Active, &p.Popularity)
	p.ReleaseDate, p.CreatedAt, p.UpdatedAt = p.ReleaseDate.UTC(), p.CreatedAt.UTC(), p.UpdatedAt.UTC()
	return p, err
}

func scanUser(rows *sql.Rows) (types.User, error) {
	var u types.User
	err := rows.Scan(&u.ID, &u.Name, &u.Address, &u.Country, &u.Email, &u.CreatedAt, &u.UpdatedAt, &u.Popularity)
	u.CreatedAt, u.UpdatedAt = u.CreatedAt.UTC(), u.UpdatedAt.UTC()
	return u, err
}

func scanOrderLine(rows *sql.Rows) (types.OrderLine, error) {
	var l types.OrderLine
	err := rows.Scan(&l.LineID, &l.OrderID, &l.UserID, &l.SKU, &l.Qty, &l.UnitPrice, &l.CreatedAt)
	l.CreatedAt = l.CreatedAt.UTC()
	return l, err
}

func collect[T any](rows *sql.Rows, scan func(*sql.Rows) (T, error)) ([]T, error) {
	defer rows.Close()
	var out []T
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (s *Store) FetchCatalogue(ctx context.Context) ([]types.CatalogueEntry, error) {
	rows, err := s.query(ctx, s.qb.Select(productColumns...).From("products").
		Where(squirrel.Eq{"active": true}).OrderBy("item_sku"))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalogue: %w", err)
	}
	products, err := collect(rows, scanProduct)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalogue: %w", err)
	}
	entries := make([]types.CatalogueEntry, len(products))
	for i, p := range products {
		entries[i] = p.Entry()
	}
	return entries, nil
}

func (s *Store) FetchUserPool(ctx context.Context) ([]types.UserRef, error) {
	return s.userRefs(ctx, s.qb.Select("user_id", "user_popularity").From("users").OrderBy("user_id"))
}

func (s *Store) SampleExistingUsers(ctx context.Context, n int) ([]types.UserRef, error) {
	if n <= 0 {
		return nil, nil
	}
	return s.userRefs(ctx, s.qb.Select("user_id", "user_popularity").From("users").
		OrderBy(s.dialect.random).Limit(uint64(n)))
}

func (s *Store) userRefs(ctx context.Context, b squirrel.SelectBuilder) ([]types.UserRef, error) {
	rows, err := s.query(ctx, b)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}
	return collect(rows, func(rows *sql.Rows) (types.UserRef, error) {
		var u types.UserRef
		return u, rows.Scan(&u.ID, &u.Popularity)
	})
}

func (s *Store) LastOrderID(ctx context.Context) (int64, bool, error) {
	var id int64
	err := s.scalar(ctx, s.qb.Select("order_id").From("orders").OrderBy("order_line_id DESC").Limit(1), &id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to get last order id: %w", err)
	}
	return id, true, nil
}

func (s *Store) MaxPopularity(ctx context.Context, kind types.Kind) (float64, error) {
	return s.aggregatePopularity(ctx, kind, "MAX")
}

func (s *Store) SumPopularity(ctx context.Context, kind types.Kind) (float64, error) {
	return s.aggregatePopularity(ctx, kind, "SUM")
}

func (s *Store) aggregatePopularity(ctx context.Context, kind types.Kind, fn string) (float64, error) {
	table, column, err := popularityColumn(kind)
	if err != nil {
		return 0, err
	}
	var v sql.NullFloat64
	if err := s.scalar(ctx, s.qb.Select(fn+"("+column+")").From(table), &v); err != nil {
		return 0, fmt.Errorf("failed to read %s popularity: %w", kind, err)
	}
	return v.Float64, nil
}

func (s *Store) CountSKUPrefix(ctx context.Context, prefix string) (int, error) {
	var n int
	err := s.scalar(ctx, s.qb.Select("COUNT(*)").From("products").Where(squirrel.Like{"item_sku": prefix + "%"}), &n)
	if err != nil {
		return 0, fmt.Errorf("failed to count skus with prefix %s: %w", prefix, err)
	}
	return n, nil
}

func (s *Store) Products(ctx context.Context, filter types.ProductFilter) ([]types.Product, error) {
	where := squirrel.And{dayRange("date_created", filter.Created), dayRange("date_updated", filter.Updated)}
	if !filter.SKUs.IsAll() {
		where = append(where, squirrel.Eq{"item_sku": filter.SKUs.Values()})
	}
	rows, err := s.query(ctx, s.qb.Select(productColumns...).From("products").Where(where).OrderBy("date_created", "item_sku"))
	if err != nil {
		return nil, fmt.Errorf("failed to get products: %w", err)
	}
	return collect(rows, scanProduct)
}

func (s *Store) Users(ctx context.Context, filter types.UserFilter) ([]types.User, error) {
	where := squirrel.And{dayRange("date_created", filter.Created)}
	if !filter.IDs.IsAll() {
		where = append(where, squirrel.Eq{"user_id": filter.IDs.Values()})
	}
	rows, err := s.query(ctx, s.qb.Select(userColumns...).From("users").Where(where).OrderBy("user_id"))
	if err != nil {
		return nil, fmt.Errorf("failed to get users: %w", err)
	}
	return collect(rows, scanUser)
}

func (s *Store) Orders(ctx context.Context, filter types.OrderFilter) ([]types.OrderLine, error) {
	where := squirrel.And{dayRange("date_created", filter.Created)}
	if !filter.OrderIDs.IsAll() {
		where = append(where, squirrel.Eq{"order_id": filter.OrderIDs.Values()})
	}
	rows, err := s.query(ctx, s.qb.Select(orderColumns...).From("orders").Where(where).OrderBy("order_line_id"))
	if err != nil {
		return nil, fmt.Errorf("failed to get orders: %w", err)
	}
	return collect(rows, scanOrderLine)
}

func (s *Store) Counts(ctx context.Context) (types.Counts, error) {
	var c types.Counts
	if err := s.scalar(ctx, s.qb.Select("COUNT(*)").From("products"), &c.Products); err != nil {
		return c, fmt.Errorf("failed to count products: %w", err)
	}
	if err := s.scalar(ctx, s.qb.Select("COUNT(*)").From("users"), &c.Users); err != nil {
		return c, fmt.Errorf("failed to count users: %w", err)
	}
	if err := s.scalar(ctx, s.qb.Select("COUNT(DISTINCT order_id)").From("orders"), &c.Orders); err != nil {
		return c, fmt.Errorf("failed to count orders: %w", err)
	}
	return c, nil
}
