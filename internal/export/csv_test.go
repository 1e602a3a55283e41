package export

import (
	"strings"
	"testing"
	"time"

	"github.com/Rana718/fakeshop/internal/types"
	"github.com/shopspring/decimal"
)

func TestFormatValue(t *testing.T) {
	ts := time.Date(2024, 5, 17, 9, 30, 5, 0, time.UTC)
	tests := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"SHOE001", "SHOE001"},
		{ts, "2024-05-17 09:30:05"},
		{decimal.RequireFromString("19.90"), "19.9"},
		{true, "true"},
		{3, "3"},
		{int64(42), "42"},
		{1.5, "1.5"},
	}
	for _, tt := range tests {
		if got := FormatValue(tt.in); got != tt.want {
			t.Errorf("FormatValue(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEncodeCSV(t *testing.T) {
	rows := []types.Row{
		{int64(1), int64(1), int64(7), "SHOE001", 2, decimal.NewFromInt(10), time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{int64(2), int64(1), int64(7), "HAT001", 1, nil, "17/05/2024"},
	}
	data, err := EncodeCSV(types.OrderHeader, rows)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "order_line_id,order_id,user_id,item_sku,qty,item_price,date_created\n" +
		"1,1,7,SHOE001,2,10,2024-01-01 00:00:00\n" +
		"2,1,7,HAT001,1,,17/05/2024\n"
	if string(data) != want {
		t.Errorf("unexpected csv:\n%s\nwant:\n%s", data, want)
	}
}

func TestEncodeCSVQuotesCommas(t *testing.T) {
	data, err := EncodeCSV([]string{"user_id", "user_address"}, []types.Row{{int64(1), "1 High St, York"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(data), `"1 High St, York"`) {
		t.Errorf("expected quoted address, got %s", data)
	}
}

func TestEncodeCSVRowWidth(t *testing.T) {
	if _, err := EncodeCSV([]string{"a", "b"}, []types.Row{{1}}); err == nil {
		t.Error("expected error for short row")
	}
}
