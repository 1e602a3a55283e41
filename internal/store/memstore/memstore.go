// Package memstore keeps the shop in process memory. It backs tests and
// --dry-run runs.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/Rana718/fakeshop/internal/generator"
	"github.com/Rana718/fakeshop/internal/types"
)

type Store struct {
	mu sync.RWMutex

	products   []types.Product
	skuIndex   map[string]int
	users      []types.User
	orders     []types.OrderLine
	nextUserID int64
	nextLineID int64

	rng generator.Source
}

func New(seed int64) *Store {
	return &Store{
		skuIndex:   make(map[string]int),
		nextUserID: 1,
		nextLineID: 1,
		rng:        generator.NewSource(seed),
	}
}

func (s *Store) EnsureSchema(ctx context.Context) error { return nil }

func (s *Store) Close() error { return nil }

func (s *Store) FetchCatalogue(ctx context.Context) ([]types.CatalogueEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]types.CatalogueEntry, 0, len(s.products))
	for _, p := range s.products {
		if p.Active {
			out = append(out, p.Entry())
		}
	}
	return out, nil
}

func (s *Store) FetchUserPool(ctx context.Context) ([]types.UserRef, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]types.UserRef, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u.Ref())
	}
	return out, nil
}

func (s *Store) LastOrderID(ctx context.Context) (int64, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.orders) == 0 {
		return 0, false, nil
	}
	return s.orders[len(s.orders)-1].OrderID, true, nil
}

func (s *Store) SampleExistingUsers(ctx context.Context, n int) ([]types.UserRef, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n > len(s.users) {
		n = len(s.users)
	}
	if n <= 0 {
		return nil, nil
	}
	idx := make([]int, len(s.users))
	for i := range idx {
		idx[i] = i
	}
	// Partial Fisher-Yates: the first n slots end up a uniform sample.
	for i := 0; i < n; i++ {
		j := i + s.rng.Intn(len(idx)-i)
		idx[i], idx[j] = idx[j], idx[i]
	}
	out := make([]types.UserRef, n)
	for i := 0; i < n; i++ {
		out[i] = s.users[idx[i]].Ref()
	}
	return out, nil
}

func (s *Store) MaxPopularity(ctx context.Context, kind types.Kind) (float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	scores, err := s.scores(kind)
	if err != nil {
		return 0, err
	}
	highest := 0.0
	for _, v := range scores {
		if *v > highest {
			highest = *v
		}
	}
	return highest, nil
}

func (s *Store) SumPopularity(ctx context.Context, kind types.Kind) (float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	scores, err := s.scores(kind)
	if err != nil {
		return 0, err
	}
	sum := 0.0
	for _, v := range scores {
		sum += *v
	}
	return sum, nil
}

func (s *Store) ScalePopularity(ctx context.Context, kind types.Kind, factor float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	scores, err := s.scores(kind)
	if err != nil {
		return err
	}
	for _, v := range scores {
		*v *= factor
	}
	return nil
}

// scores must be called with the lock held.
func (s *Store) scores(kind types.Kind) ([]*float64, error) {
	switch kind {
	case types.KindProducts:
		out := make([]*float64, len(s.products))
		for i := range s.products {
			out[i] = &s.products[i].Popularity
		}
		return out, nil
	case types.KindUsers:
		out := make([]*float64, len(s.users))
		for i := range s.users {
			out[i] = &s.users[i].Popularity
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unknown popularity kind %q", kind)
	}
}

func (s *Store) CountSKUPrefix(ctx context.Context, prefix string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, p := range s.products {
		if strings.HasPrefix(p.SKU, prefix) {
			n++
		}
	}
	return n, nil
}

func (s *Store) InsertProducts(ctx context.Context, products []types.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]bool, len(products))
	for _, p := range products {
		if _, ok := s.skuIndex[p.SKU]; ok || seen[p.SKU] {
			return fmt.Errorf("failed to insert products: duplicate sku %s", p.SKU)
		}
		seen[p.SKU] = true
	}
	for _, p := range products {
		s.skuIndex[p.SKU] = len(s.products)
		s.products = append(s.products, p)
	}
	return nil
}

func (s *Store) InsertUsers(ctx context.Context, users []types.User) ([]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]int64, len(users))
	for i, u := range users {
		u.ID = s.nextUserID
		s.nextUserID++
		s.users = append(s.users, u)
		ids[i] = u.ID
	}
	return ids, nil
}

func (s *Store) InsertOrders(ctx context.Context, lines []types.OrderLine) ([]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, l := range lines {
		if _, ok := s.skuIndex[l.SKU]; !ok {
			return nil, fmt.Errorf("failed to insert orders: unknown sku %s", l.SKU)
		}
	}
	ids := make([]int64, len(lines))
	for i, l := range lines {
		l.LineID = s.nextLineID
		s.nextLineID++
		s.orders = append(s.orders, l)
		ids[i] = l.LineID
	}
	return ids, nil
}

func (s *Store) UpdateProducts(ctx context.Context, updates []types.ProductUpdate) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := types.Now()
	n := 0
	for _, u := range updates {
		i, ok := s.skuIndex[u.SKU]
		if !ok {
			continue
		}
		if u.Price != nil {
			s.products[i].Price = *u.Price
		}
		if u.Active != nil {
			s.products[i].Active = *u.Active
		}
		s.products[i].UpdatedAt = now
		n++
	}
	return n, nil
}

func (s *Store) UpdateUsers(ctx context.Context, updates []types.UserUpdate) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	byID := make(map[int64]int, len(s.users))
	for i, u := range s.users {
		byID[u.ID] = i
	}
	now := types.Now()
	n := 0
	for _, u := range updates {
		i, ok := byID[u.ID]
		if !ok {
			continue
		}
		target := &s.users[i]
		if u.Name != nil {
			target.Name = *u.Name
		}
		if u.Address != nil {
			target.Address = *u.Address
		}
		if u.Country != nil {
			target.Country = *u.Country
		}
		if u.Email != nil {
			target.Email = *u.Email
		}
		target.UpdatedAt = now
		n++
	}
	return n, nil
}

func (s *Store) Products(ctx context.Context, filter types.ProductFilter) ([]types.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []types.Product
	for _, p := range s.products {
		if filter.SKUs.Match(p.SKU) && filter.Created.Contains(p.CreatedAt) && filter.Updated.Contains(p.UpdatedAt) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *Store) Users(ctx context.Context, filter types.UserFilter) ([]types.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []types.User
	for _, u := range s.users {
		if filter.IDs.Match(u.ID) && filter.Created.Contains(u.CreatedAt) {
			out = append(out, u)
		}
	}
	return out, nil
}

func (s *Store) Orders(ctx context.Context, filter types.OrderFilter) ([]types.OrderLine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []types.OrderLine
	for _, l := range s.orders {
		if filter.OrderIDs.Match(l.OrderID) && filter.Created.Contains(l.CreatedAt) {
			out = append(out, l)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].LineID < out[j].LineID })
	return out, nil
}

func (s *Store) Counts(ctx context.Context) (types.Counts, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	orders := make(map[int64]struct{})
	for _, l := range s.orders {
		orders[l.OrderID] = struct{}{}
	}
	return types.Counts{Products: len(s.products), Users: len(s.users), Orders: len(orders)}, nil
}
