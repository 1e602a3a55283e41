package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/Rana718/fakeshop/internal/types"
)

func TestOpenMemory(t *testing.T) {
	st, err := Open(context.Background(), Options{Provider: "memory", Seed: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer st.Close()

	counts, err := st.Counts(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if counts != (types.Counts{}) {
		t.Errorf("expected an empty store, got %+v", counts)
	}
}

func TestOpenSQLite(t *testing.T) {
	url := "sqlite://" + filepath.Join(t.TempDir(), "shop.db")
	st, err := Open(context.Background(), Options{Provider: "sqlite", URL: url})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer st.Close()

	if err := st.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}
	if _, ok, err := st.LastOrderID(context.Background()); err != nil || ok {
		t.Errorf("expected no orders yet, got ok=%v err=%v", ok, err)
	}
}

func TestOpenUnknownProvider(t *testing.T) {
	_, err := Open(context.Background(), Options{Provider: "oracle"})
	if !errors.Is(err, ErrUnsupportedProvider) {
		t.Fatalf("expected ErrUnsupportedProvider, got %v", err)
	}
}
