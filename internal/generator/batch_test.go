package generator

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Rana718/fakeshop/internal/types"
	"github.com/shopspring/decimal"
)

type fakeUsers struct {
	pool    []types.UserRef
	nextID  int64
	created []types.UserRef
	sampled int
}

func (f *fakeUsers) SampleExisting(_ context.Context, n int) ([]types.UserRef, error) {
	f.sampled += n
	if n > len(f.pool) {
		n = len(f.pool)
	}
	return append([]types.UserRef(nil), f.pool[:n]...), nil
}

func (f *fakeUsers) Create(_ context.Context, n int, _ time.Time) ([]types.UserRef, error) {
	out := make([]types.UserRef, n)
	for i := range out {
		f.nextID++
		out[i] = types.UserRef{ID: f.nextID}
	}
	f.created = append(f.created, out...)
	return out, nil
}

func singleDay(s string) types.DateRange {
	d := day(s)
	return types.DateRange{Start: d, End: d}
}

func TestGenerateSingleOrder(t *testing.T) {
	gen := NewBatchGenerator(NewSource(1), BatchOptions{}, nil)

	batch, err := gen.Generate(context.Background(), BatchRequest{
		NumOrders: 1,
		MaxItems:  1,
		Catalogue: []types.CatalogueEntry{
			{SKU: "A", Price: decimal.NewFromInt(10), Popularity: 1.0},
			{SKU: "B", Price: decimal.NewFromInt(20), Popularity: 0.0},
		},
		UserPool: []types.UserRef{{ID: 7, Popularity: 1.0}},
		Dates:    singleDay("2024-01-01"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(batch.Lines) != 1 {
		t.Fatalf("expected one line, got %d", len(batch.Lines))
	}
	line := batch.Lines[0]
	if line.SKU != "A" {
		t.Errorf("expected sku A, got %s", line.SKU)
	}
	if !line.UnitPrice.Equal(decimal.NewFromInt(10)) {
		t.Errorf("expected price 10, got %s", line.UnitPrice)
	}
	if line.Qty != 1 {
		t.Errorf("expected qty 1, got %d", line.Qty)
	}
	if line.UserID != 7 {
		t.Errorf("expected user 7, got %d", line.UserID)
	}
	if line.OrderID != 1 {
		t.Errorf("expected order id 1, got %d", line.OrderID)
	}
	if !line.CreatedAt.Equal(day("2024-01-01")) {
		t.Errorf("expected 2024-01-01, got %s", line.CreatedAt)
	}
}

func TestGenerateConsecutiveOrderIDs(t *testing.T) {
	gen := NewBatchGenerator(NewSource(99), BatchOptions{}, nil)

	batch, err := gen.Generate(context.Background(), BatchRequest{
		NumOrders:   50,
		MaxItems:    4,
		Catalogue:   []types.CatalogueEntry{{SKU: "A", Price: decimal.NewFromInt(3), Popularity: 0.6}, {SKU: "B", Price: decimal.NewFromInt(5), Popularity: 0.4}},
		UserPool:    []types.UserRef{{ID: 1, Popularity: 0.5}, {ID: 2, Popularity: 0.5}},
		Dates:       types.DateRange{Start: day("2024-01-01"), End: day("2024-01-08")},
		LastOrderID: 100,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if batch.FirstOrderID != 101 || batch.LastOrderID != 150 {
		t.Fatalf("expected ids 101..150, got %d..%d", batch.FirstOrderID, batch.LastOrderID)
	}

	seen := map[int64]bool{}
	prev := int64(0)
	for _, line := range batch.Lines {
		if line.OrderID < prev {
			t.Fatalf("order ids not in generation order: %d after %d", line.OrderID, prev)
		}
		prev = line.OrderID
		seen[line.OrderID] = true
	}
	for id := int64(101); id <= 150; id++ {
		if !seen[id] {
			t.Errorf("order %d has no lines", id)
		}
	}
	if len(seen) != 50 {
		t.Errorf("expected 50 distinct orders, got %d", len(seen))
	}
	if len(batch.BasketSizes) != 50 {
		t.Errorf("expected 50 basket sizes, got %d", len(batch.BasketSizes))
	}
}

func TestGenerateWithUserSource(t *testing.T) {
	pool := []types.UserRef{{ID: 1}, {ID: 2}, {ID: 3}}
	users := &fakeUsers{pool: pool, nextID: 1000}
	gen := NewBatchGenerator(NewSource(5), BatchOptions{ReturningUserRatioMax: 0.5}, nil)

	batch, err := gen.Generate(context.Background(), BatchRequest{
		NumOrders: 40,
		MaxItems:  3,
		Catalogue: []types.CatalogueEntry{{SKU: "A", Price: decimal.NewFromInt(1), Popularity: 1}},
		UserPool:  pool,
		Users:     users,
		Dates:     types.DateRange{Start: day("2024-02-01"), End: day("2024-02-05")},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if batch.ReturningUsers+batch.NewUsers != 40 {
		t.Errorf("returning (%d) + new (%d) should equal 40", batch.ReturningUsers, batch.NewUsers)
	}
	if batch.ReturningUsers > len(pool) {
		t.Errorf("more returning users (%d) than the pool holds", batch.ReturningUsers)
	}
	if len(users.created) != batch.NewUsers {
		t.Errorf("expected %d created users, source made %d", batch.NewUsers, len(users.created))
	}

	known := map[int64]bool{1: true, 2: true, 3: true}
	for _, u := range users.created {
		known[u.ID] = true
	}
	for _, line := range batch.Lines {
		if !known[line.UserID] {
			t.Fatalf("line assigned to unknown user %d", line.UserID)
		}
		if line.CreatedAt.Before(day("2024-02-01")) || line.CreatedAt.After(day("2024-02-05")) {
			t.Fatalf("line date %s outside range", line.CreatedAt)
		}
	}
}

func TestGenerateEmptyPoolWithSource(t *testing.T) {
	users := &fakeUsers{nextID: 10}
	gen := NewBatchGenerator(NewSource(2), BatchOptions{}, nil)

	batch, err := gen.Generate(context.Background(), BatchRequest{
		NumOrders: 5,
		MaxItems:  2,
		Catalogue: []types.CatalogueEntry{{SKU: "A", Price: decimal.NewFromInt(1), Popularity: 1}},
		Users:     users,
		Dates:     singleDay("2024-01-01"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if batch.NewUsers != 5 || batch.ReturningUsers != 0 {
		t.Errorf("expected 5 new users and none returning, got %d/%d", batch.NewUsers, batch.ReturningUsers)
	}
	if users.sampled != 0 {
		t.Errorf("empty pool should not be sampled, asked for %d", users.sampled)
	}
}

func TestGeneratePreconditions(t *testing.T) {
	catalogue := []types.CatalogueEntry{{SKU: "A", Price: decimal.NewFromInt(1), Popularity: 1}}
	pool := []types.UserRef{{ID: 1, Popularity: 1}}
	dates := singleDay("2024-01-01")

	tests := []struct {
		name string
		req  BatchRequest
		want error
	}{
		{"zero orders", BatchRequest{NumOrders: 0, MaxItems: 1, Catalogue: catalogue, UserPool: pool, Dates: dates}, ErrInvalidCount},
		{"zero max items", BatchRequest{NumOrders: 1, MaxItems: 0, Catalogue: catalogue, UserPool: pool, Dates: dates}, ErrInvalidCount},
		{"empty catalogue", BatchRequest{NumOrders: 1, MaxItems: 1, UserPool: pool, Dates: dates}, ErrNoProducts},
		{"empty user pool", BatchRequest{NumOrders: 1, MaxItems: 1, Catalogue: catalogue, Dates: dates}, ErrNoUsers},
		{"inverted range", BatchRequest{NumOrders: 1, MaxItems: 1, Catalogue: catalogue, UserPool: pool,
			Dates: types.DateRange{Start: day("2024-01-02"), End: day("2024-01-01")}}, ErrInvalidDateRange},
		{"missing start", BatchRequest{NumOrders: 1, MaxItems: 1, Catalogue: catalogue, UserPool: pool}, ErrInvalidDateRange},
	}

	gen := NewBatchGenerator(NewSource(1), BatchOptions{}, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := gen.Generate(context.Background(), tt.req)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			var pe *PreconditionError
			if !errors.As(err, &pe) {
				t.Fatalf("expected a PreconditionError, got %T", err)
			}
		})
	}
}

func TestGenerateIsRepeatableForSeed(t *testing.T) {
	req := BatchRequest{
		NumOrders: 20,
		MaxItems:  5,
		Catalogue: []types.CatalogueEntry{
			{SKU: "A", Price: decimal.NewFromInt(1), Popularity: 0.2},
			{SKU: "B", Price: decimal.NewFromInt(2), Popularity: 0.3},
			{SKU: "C", Price: decimal.NewFromInt(3), Popularity: 0.5},
		},
		UserPool: []types.UserRef{{ID: 1, Popularity: 0.4}, {ID: 2, Popularity: 0.6}},
		Dates:    types.DateRange{Start: day("2024-01-01"), End: day("2024-01-10")},
	}

	a, err := NewBatchGenerator(NewSource(77), BatchOptions{}, nil).Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := NewBatchGenerator(NewSource(77), BatchOptions{}, nil).Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(a.Lines) != len(b.Lines) {
		t.Fatalf("same seed gave %d and %d lines", len(a.Lines), len(b.Lines))
	}
	for i := range a.Lines {
		la, lb := a.Lines[i], b.Lines[i]
		if la.OrderID != lb.OrderID || la.SKU != lb.SKU || la.Qty != lb.Qty || la.UserID != lb.UserID || !la.CreatedAt.Equal(lb.CreatedAt) {
			t.Fatalf("line %d differs: %+v vs %+v", i, la, lb)
		}
	}
}
