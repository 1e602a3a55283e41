package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRegistryExposesShopMetrics(t *testing.T) {
	r := NewRegistry()
	r.OrdersGenerated.Add(3)
	r.ExportRows.WithLabelValues("file").Add(12)
	r.ObserveBasketSizes([]int{1, 2, 2})

	if got := testutil.ToFloat64(r.OrdersGenerated); got != 3 {
		t.Errorf("expected 3 orders, got %v", got)
	}
	if got := testutil.ToFloat64(r.ExportRows.WithLabelValues("file")); got != 12 {
		t.Errorf("expected 12 export rows, got %v", got)
	}

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	for _, name := range []string{"fakeshop_orders_generated_total 3", "fakeshop_basket_size_count 3", `fakeshop_export_rows_total{sink="file"} 12`} {
		if !strings.Contains(string(body), name) {
			t.Errorf("metrics output missing %q", name)
		}
	}
}
