package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// CatalogueEntry is the slice of a product the order generator needs.
type CatalogueEntry struct {
	SKU        string
	Price      decimal.Decimal
	Popularity float64
}

// UserRef is the slice of a user the order generator needs.
type UserRef struct {
	ID         int64
	Popularity float64
}

type Product struct {
	SKU         string          `json:"item_sku"`
	Price       decimal.Decimal `json:"item_price"`
	ReleaseDate time.Time       `json:"release_date"`
	CreatedAt   time.Time       `json:"date_created"`
	UpdatedAt   time.Time       `json:"date_updated"`
	Active      bool            `json:"active"`
	Popularity  float64         `json:"-"`
}

func (p Product) Entry() CatalogueEntry {
	return CatalogueEntry{SKU: p.SKU, Price: p.Price, Popularity: p.Popularity}
}

type User struct {
	ID         int64     `json:"user_id"`
	Name       string    `json:"user_name"`
	Address    string    `json:"user_address"`
	Country    string    `json:"user_country"`
	Email      string    `json:"user_email"`
	CreatedAt  time.Time `json:"date_created"`
	UpdatedAt  time.Time `json:"date_updated"`
	Popularity float64   `json:"-"`
}

func (u User) Ref() UserRef {
	return UserRef{ID: u.ID, Popularity: u.Popularity}
}

// ProductUpdate changes price and/or active flag of one product. Nil fields
// are left alone.
type ProductUpdate struct {
	SKU    string
	Price  *decimal.Decimal
	Active *bool
}

// UserUpdate rewrites the contact details of one user. Nil fields are left alone.
type UserUpdate struct {
	ID      int64
	Name    *string
	Address *string
	Country *string
	Email   *string
}

// OrderLine is one SKU of one order. Lines are never mutated once stored.
type OrderLine struct {
	LineID    int64           `json:"order_line_id"`
	OrderID   int64           `json:"order_id"`
	UserID    int64           `json:"user_id"`
	SKU       string          `json:"item_sku"`
	Qty       int             `json:"qty"`
	UnitPrice decimal.Decimal `json:"item_price"`
	CreatedAt time.Time       `json:"date_created"`
}

// Kind names a population that carries popularity weights.
type Kind string

const (
	KindProducts Kind = "products"
	KindUsers    Kind = "users"
)

type Counts struct {
	Products int `json:"products"`
	Users    int `json:"users"`
	Orders   int `json:"orders"`
}
