package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/Rana718/fakeshop/internal/types"
)

func (s *Store) InsertProducts(ctx context.Context, products []types.Product) error {
	if len(products) == 0 {
		return nil
	}
	return s.withTx(ctx, func(tx *sql.Tx) error {
		b := s.qb.Insert("products").Columns(productColumns...)
		for _, p := range products {
			b = b.Values(p.SKU, p.Price, p.ReleaseDate.UTC(), p.CreatedAt.UTC(), p.UpdatedAt.UTC(), p.Active, p.Popularity)
		}
		query, args, err := b.ToSql()
		if err != nil {
			return fmt.Errorf("failed to build product insert: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("failed to insert products: %w", err)
		}
		return nil
	})
}

func (s *Store) InsertUsers(ctx context.Context, users []types.User) ([]int64, error) {
	ids := make([]int64, 0, len(users))
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		for _, u := range users {
			b := s.qb.Insert("users").Columns(userColumns[1:]...).
				Values(u.Name, u.Address, u.Country, u.Email, u.CreatedAt.UTC(), u.UpdatedAt.UTC(), u.Popularity)
			id, err := s.insertID(ctx, tx, b, "user_id")
			if err != nil {
				return fmt.Errorf("failed to insert user %q: %w", u.Name, err)
			}
			ids = append(ids, id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// InsertOrders stores every line or none of them.
func (s *Store) InsertOrders(ctx context.Context, lines []types.OrderLine) ([]int64, error) {
	ids := make([]int64, 0, len(lines))
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		for _, l := range lines {
			b := s.qb.Insert("orders").Columns(orderColumns[1:]...).
				Values(l.OrderID, l.UserID, l.SKU, l.Qty, l.UnitPrice, l.CreatedAt.UTC())
			id, err := s.insertID(ctx, tx, b, "order_line_id")
			if err != nil {
				return fmt.Errorf("failed to insert order %d line %s: %w", l.OrderID, l.SKU, err)
			}
			ids = append(ids, id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (s *Store) ScalePopularity(ctx context.Context, kind types.Kind, factor float64) error {
	table, column, err := popularityColumn(kind)
	if err != nil {
		return err
	}
	query, args, err := s.qb.Update(table).Set(column, squirrel.Expr(column+" * ?", factor)).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build popularity update: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to scale %s popularity: %w", kind, err)
	}
	return nil
}

func (s *Store) UpdateProducts(ctx context.Context, updates []types.ProductUpdate) (int, error) {
	now := types.Now()
	updated := 0
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		for _, u := range updates {
			b := s.qb.Update("products").Set("date_updated", now).Where(squirrel.Eq{"item_sku": u.SKU})
			if u.Price != nil {
				b = b.Set("item_price", *u.Price)
			}
			if u.Active != nil {
				b = b.Set("active", *u.Active)
			}
			n, err := execCount(ctx, tx, b)
			if err != nil {
				return fmt.Errorf("failed to update product %s: %w", u.SKU, err)
			}
			updated += n
		}
		return nil
	})
	return updated, err
}

func (s *Store) UpdateUsers(ctx context.Context, updates []types.UserUpdate) (int, error) {
	now := types.Now()
	updated := 0
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		for _, u := range updates {
			b := s.qb.Update("users").Set("date_updated", now).Where(squirrel.Eq{"user_id": u.ID})
			for column, v := range map[string]*string{
				"user_name":    u.Name,
				"user_address": u.Address,
				"user_country": u.Country,
				"user_email":   u.Email,
			} {
				if v != nil {
					b = b.Set(column, *v)
				}
			}
			n, err := execCount(ctx, tx, b)
			if err != nil {
				return fmt.Errorf("failed to update user %d: %w", u.ID, err)
			}
			updated += n
		}
		return nil
	})
	return updated, err
}

func execCount(ctx context.Context, tx *sql.Tx, b squirrel.UpdateBuilder) (int, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return 0, err
	}
	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}
