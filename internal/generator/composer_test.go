package generator

import (
	"errors"
	"testing"

	"github.com/Rana718/fakeshop/internal/types"
	"github.com/shopspring/decimal"
)

func testCatalogue(t *testing.T) *Catalogue {
	t.Helper()
	c, err := NewCatalogue([]types.CatalogueEntry{
		{SKU: "SHOE001", Price: decimal.RequireFromString("59.99"), Popularity: 0.5},
		{SKU: "SHOE002", Price: decimal.RequireFromString("79.00"), Popularity: 0.3},
		{SKU: "HAT001", Price: decimal.RequireFromString("15.50"), Popularity: 0.2},
	})
	if err != nil {
		t.Fatalf("failed to build catalogue: %v", err)
	}
	return c
}

func TestComposeBasketShape(t *testing.T) {
	rng := NewSource(21)
	composer := NewOrderComposer(rng, NewBasketSizeSampler(rng, 0))
	catalogue := testCatalogue(t)

	for i := 0; i < 2000; i++ {
		basket, err := composer.Compose(catalogue, 7)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if basket.Size < 1 || basket.Size > 7 {
			t.Fatalf("basket size out of range: %d", basket.Size)
		}
		if len(basket.Lines) > basket.Size {
			t.Fatalf("%d distinct lines for %d draws", len(basket.Lines), basket.Size)
		}

		seen := map[string]bool{}
		qty := 0
		for _, line := range basket.Lines {
			if line.Qty < 1 {
				t.Fatalf("line %s has qty %d", line.SKU, line.Qty)
			}
			if seen[line.SKU] {
				t.Fatalf("sku %s appears twice in one basket", line.SKU)
			}
			seen[line.SKU] = true
			qty += line.Qty
		}
		if qty != basket.Size {
			t.Fatalf("quantities sum to %d, expected %d", qty, basket.Size)
		}
	}
}

func TestComposeEmptyCatalogue(t *testing.T) {
	rng := NewSource(1)
	composer := NewOrderComposer(rng, NewBasketSizeSampler(rng, 0))

	if _, err := composer.Compose(nil, 3); !errors.Is(err, ErrNoProducts) {
		t.Errorf("expected ErrNoProducts, got %v", err)
	}
	if _, err := NewCatalogue(nil); !errors.Is(err, ErrNoProducts) {
		t.Errorf("expected ErrNoProducts from NewCatalogue, got %v", err)
	}
}

func TestCataloguePrice(t *testing.T) {
	c := testCatalogue(t)
	if got := c.Price("HAT001"); !got.Equal(decimal.RequireFromString("15.5")) {
		t.Errorf("expected 15.50, got %s", got)
	}
	if c.Len() != 3 {
		t.Errorf("expected 3 entries, got %d", c.Len())
	}
}
