package generator

import (
	"github.com/Rana718/fakeshop/internal/types"
	"github.com/shopspring/decimal"
)

// Catalogue is a popularity-weighted snapshot of sellable products.
type Catalogue struct {
	set    *WeightedSet[string]
	prices map[string]decimal.Decimal
}

func NewCatalogue(entries []types.CatalogueEntry) (*Catalogue, error) {
	if len(entries) == 0 {
		return nil, precondition("catalogue", 0, ErrNoProducts)
	}
	skus := make([]string, len(entries))
	weights := make([]float64, len(entries))
	prices := make(map[string]decimal.Decimal, len(entries))
	for i, e := range entries {
		skus[i] = e.SKU
		weights[i] = e.Popularity
		prices[e.SKU] = e.Price
	}
	set, err := NewWeightedSet(skus, weights)
	if err != nil {
		return nil, err
	}
	return &Catalogue{set: set, prices: prices}, nil
}

func (c *Catalogue) Len() int { return c.set.Len() }

// Price is the price captured at generation time.
func (c *Catalogue) Price(sku string) decimal.Decimal { return c.prices[sku] }

type BasketLine struct {
	SKU string
	Qty int
}

// Basket holds distinct SKUs in the order they were first drawn.
// Size is the number of draws, so len(Lines) <= Size.
type Basket struct {
	Lines []BasketLine
	Size  int
}

type OrderComposer struct {
	sizes *BasketSizeSampler
	rng   Source
}

func NewOrderComposer(rng Source, sizes *BasketSizeSampler) *OrderComposer {
	return &OrderComposer{sizes: sizes, rng: rng}
}

// Compose draws a basket size, then that many SKUs with replacement.
// Repeat draws raise the quantity of the existing line.
func (c *OrderComposer) Compose(catalogue *Catalogue, maxItems int) (Basket, error) {
	if catalogue == nil || catalogue.Len() == 0 {
		return Basket{}, precondition("catalogue", 0, ErrNoProducts)
	}
	n, err := c.sizes.Sample(maxItems)
	if err != nil {
		return Basket{}, err
	}

	basket := Basket{Size: n, Lines: make([]BasketLine, 0, n)}
	index := make(map[string]int, n)
	for i := 0; i < n; i++ {
		sku := catalogue.set.Pick(c.rng)
		if at, ok := index[sku]; ok {
			basket.Lines[at].Qty++
			continue
		}
		index[sku] = len(basket.Lines)
		basket.Lines = append(basket.Lines, BasketLine{SKU: sku, Qty: 1})
	}
	return basket, nil
}
