package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Rana718/fakeshop/internal/metrics"
	"github.com/Rana718/fakeshop/internal/store/memstore"
	"github.com/Rana718/fakeshop/internal/types"
	"github.com/shopspring/decimal"
)

var (
	jan1 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	jan2 = jan1.AddDate(0, 0, 1)
)

func seededStore(t *testing.T) *memstore.Store {
	t.Helper()
	ctx := context.Background()
	s := memstore.New(1)
	if err := s.InsertProducts(ctx, []types.Product{
		{SKU: "SHOE001", Price: decimal.NewFromInt(10), CreatedAt: jan1, UpdatedAt: jan1, Active: true, Popularity: 1},
		{SKU: "SHOE002", Price: decimal.NewFromInt(20), CreatedAt: jan1, UpdatedAt: jan2, Active: true, Popularity: 1},
	}); err != nil {
		t.Fatalf("failed to insert products: %v", err)
	}
	if _, err := s.InsertUsers(ctx, []types.User{
		{Name: "Ann", CreatedAt: jan1, UpdatedAt: jan1},
		{Name: "Ben", CreatedAt: jan2, UpdatedAt: jan2},
	}); err != nil {
		t.Fatalf("failed to insert users: %v", err)
	}
	if _, err := s.InsertOrders(ctx, []types.OrderLine{
		{OrderID: 1, UserID: 1, SKU: "SHOE001", Qty: 1, UnitPrice: decimal.NewFromInt(10), CreatedAt: jan1},
		{OrderID: 1, UserID: 1, SKU: "SHOE002", Qty: 2, UnitPrice: decimal.NewFromInt(20), CreatedAt: jan1},
		{OrderID: 2, UserID: 2, SKU: "SHOE001", Qty: 1, UnitPrice: decimal.NewFromInt(10), CreatedAt: jan2},
	}); err != nil {
		t.Fatalf("failed to insert orders: %v", err)
	}
	return s
}

type decoded struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Count   int             `json:"count"`
	Data    json.RawMessage `json:"data"`
}

func get(t *testing.T, s *Server, target string) (int, decoded, http.Header) {
	t.Helper()
	resp, err := s.App().Test(httptest.NewRequest(http.MethodGet, target, nil))
	if err != nil {
		t.Fatalf("request %s failed: %v", target, err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	var d decoded
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(body, &d); err != nil {
			t.Fatalf("%s: invalid json %q: %v", target, body, err)
		}
	}
	return resp.StatusCode, d, resp.Header
}

func TestEndpoints(t *testing.T) {
	srv := NewServer(seededStore(t), Options{}, nil, nil)

	tests := []struct {
		target string
		status int
		count  int
	}{
		{"/products", 200, 2},
		{"/products?date_updated=2024-01-02", 200, 1},
		{"/products?date_updated=2024-03-01", 404, 0},
		{"/products?date_updated=01-02-2024", 400, 0},
		{"/users", 200, 2},
		{"/users?start_date=2024-01-02", 200, 1},
		{"/users?end_date=2024-01-01", 200, 1},
		{"/users?start_date=2024-01-05&end_date=2024-01-01", 400, 0},
		{"/users?start_date=2025-01-01", 404, 0},
		{"/orders", 200, 3},
		{"/orders?order_id=1", 200, 2},
		{"/orders?order_id=1&order_id=2", 200, 3},
		{"/orders?order_id=1,2", 200, 3},
		{"/orders?order_id=abc", 400, 0},
		{"/orders?order_id=9", 404, 0},
		{"/orders?start_date=2024-01-02&end_date=2024-01-02", 200, 1},
	}
	for _, tt := range tests {
		status, body, _ := get(t, srv, tt.target)
		if status != tt.status {
			t.Errorf("%s: expected status %d, got %d (%s)", tt.target, tt.status, status, body.Message)
			continue
		}
		if status == 200 && body.Count != tt.count {
			t.Errorf("%s: expected %d records, got %d", tt.target, tt.count, body.Count)
		}
		if status != 200 && (body.Success || body.Message == "") {
			t.Errorf("%s: expected an error message, got %+v", tt.target, body)
		}
	}
}

func TestNotFoundNamesFilter(t *testing.T) {
	srv := NewServer(seededStore(t), Options{}, nil, nil)
	_, body, _ := get(t, srv, "/orders?order_id=9")
	if !strings.Contains(body.Message, "9") {
		t.Errorf("expected message to name the order id, got %q", body.Message)
	}
}

func TestStats(t *testing.T) {
	srv := NewServer(seededStore(t), Options{}, nil, nil)
	status, body, _ := get(t, srv, "/stats")
	if status != 200 {
		t.Fatalf("expected 200, got %d", status)
	}
	var counts types.Counts
	if err := json.Unmarshal(body.Data, &counts); err != nil {
		t.Fatalf("invalid stats payload: %v", err)
	}
	if counts != (types.Counts{Products: 2, Users: 2, Orders: 2}) {
		t.Errorf("unexpected counts %+v", counts)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	reg := metrics.NewRegistry()
	reg.OrdersGenerated.Add(3)
	srv := NewServer(seededStore(t), Options{}, reg, nil)

	resp, err := srv.App().Test(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "fakeshop_orders_generated_total 3") {
		t.Errorf("metrics output missing counter:\n%s", body)
	}
}

type failingReader struct{}

func (failingReader) Products(context.Context, types.ProductFilter) ([]types.Product, error) {
	return nil, errors.New("connection refused")
}
func (failingReader) Users(context.Context, types.UserFilter) ([]types.User, error) {
	return nil, errors.New("connection refused")
}
func (failingReader) Orders(context.Context, types.OrderFilter) ([]types.OrderLine, error) {
	return nil, errors.New("connection refused")
}
func (failingReader) Counts(context.Context) (types.Counts, error) {
	return types.Counts{}, errors.New("connection refused")
}

func TestStoreErrorsAreGeneric(t *testing.T) {
	srv := NewServer(failingReader{}, Options{}, nil, nil)
	for _, target := range []string{"/products", "/users", "/orders", "/stats"} {
		status, body, _ := get(t, srv, target)
		if status != 500 {
			t.Errorf("%s: expected 500, got %d", target, status)
		}
		if strings.Contains(body.Message, "connection refused") {
			t.Errorf("%s: store error leaked: %q", target, body.Message)
		}
	}
}

type mapCache struct {
	mu   sync.Mutex
	data map[string][]byte
	sets int
}

func (m *mapCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.data[key]
	return b, ok, nil
}

func (m *mapCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	m.sets++
	return nil
}

func TestResponseCache(t *testing.T) {
	st := seededStore(t)
	cache := &mapCache{data: map[string][]byte{}}
	srv := NewServer(st, Options{Cache: cache, CacheTTL: time.Minute}, nil, nil)

	_, first, hdr := get(t, srv, "/users")
	if hdr.Get("X-Cache") != "MISS" || first.Count != 2 {
		t.Fatalf("expected a cache miss with 2 users, got %q %d", hdr.Get("X-Cache"), first.Count)
	}

	if _, err := st.InsertUsers(context.Background(), []types.User{{Name: "Cat", CreatedAt: jan2}}); err != nil {
		t.Fatalf("failed to insert user: %v", err)
	}

	_, second, hdr := get(t, srv, "/users")
	if hdr.Get("X-Cache") != "HIT" || second.Count != 2 {
		t.Errorf("expected cached response with 2 users, got %q %d", hdr.Get("X-Cache"), second.Count)
	}

	get(t, srv, "/users?start_date=2030-01-01")
	if cache.sets != 1 {
		t.Errorf("error responses must not be cached, got %d writes", cache.sets)
	}
}
