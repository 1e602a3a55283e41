package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Registry struct {
	reg             *prometheus.Registry
	OrdersGenerated prometheus.Counter
	LinesGenerated  prometheus.Counter
	ProductsCreated prometheus.Counter
	UsersCreated    prometheus.Counter
	ExportRows      *prometheus.CounterVec
	BasketSize      prometheus.Histogram
	GenerationSec   prometheus.Histogram
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()
	orders := prometheus.NewCounter(prometheus.CounterOpts{Name: "fakeshop_orders_generated_total"})
	lines := prometheus.NewCounter(prometheus.CounterOpts{Name: "fakeshop_order_lines_generated_total"})
	products := prometheus.NewCounter(prometheus.CounterOpts{Name: "fakeshop_products_created_total"})
	users := prometheus.NewCounter(prometheus.CounterOpts{Name: "fakeshop_users_created_total"})
	exportRows := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "fakeshop_export_rows_total"}, []string{"sink"})
	basket := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "fakeshop_basket_size",
		Buckets: prometheus.LinearBuckets(1, 1, 10),
	})
	genLatency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "fakeshop_generation_seconds",
		Buckets: prometheus.DefBuckets,
	})

	r.MustRegister(orders, lines, products, users, exportRows, basket, genLatency)
	return &Registry{
		reg:             r,
		OrdersGenerated: orders,
		LinesGenerated:  lines,
		ProductsCreated: products,
		UsersCreated:    users,
		ExportRows:      exportRows,
		BasketSize:      basket,
		GenerationSec:   genLatency,
	}
}

// ObserveBasketSizes records one histogram sample per order.
func (r *Registry) ObserveBasketSizes(sizes []int) {
	for _, n := range sizes {
		r.BasketSize.Observe(float64(n))
	}
}

func (r *Registry) Gatherer() prometheus.Gatherer { return r.reg }

func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}) }
