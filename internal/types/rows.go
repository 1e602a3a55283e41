package types

// Row is one export record. Values keep their Go types until serialised.
type Row []any

// Column positions of an order row.
const (
	OrderColLineID = iota
	OrderColOrderID
	OrderColUserID
	OrderColSKU
	OrderColQty
	OrderColPrice
	OrderColCreatedAt
)

var (
	OrderHeader   = []string{"order_line_id", "order_id", "user_id", "item_sku", "qty", "item_price", "date_created"}
	ProductHeader = []string{"Product SKU", "Price", "Release Date", "Date Created", "Date Updated", "Active"}
	UserHeader    = []string{"user_id", "user_name", "user_address", "user_country", "user_email", "date_created", "date_updated"}
)

func (o OrderLine) Row() Row {
	return Row{o.LineID, o.OrderID, o.UserID, o.SKU, o.Qty, o.UnitPrice, o.CreatedAt}
}

// Row leaves popularity out; it is internal sampling state.
func (p Product) Row() Row {
	return Row{p.SKU, p.Price, p.ReleaseDate, p.CreatedAt, p.UpdatedAt, p.Active}
}

func (u User) Row() Row {
	return Row{u.ID, u.Name, u.Address, u.Country, u.Email, u.CreatedAt, u.UpdatedAt}
}

func OrderRows(lines []OrderLine) []Row {
	rows := make([]Row, 0, len(lines))
	for _, l := range lines {
		rows = append(rows, l.Row())
	}
	return rows
}

func ProductRows(products []Product) []Row {
	rows := make([]Row, 0, len(products))
	for _, p := range products {
		rows = append(rows, p.Row())
	}
	return rows
}

func UserRows(users []User) []Row {
	rows := make([]Row, 0, len(users))
	for _, u := range users {
		rows = append(rows, u.Row())
	}
	return rows
}
