package export

import (
	"context"
	"fmt"

	"github.com/Rana718/fakeshop/internal/generator"
	"github.com/Rana718/fakeshop/internal/logger"
	"github.com/Rana718/fakeshop/internal/metrics"
	"github.com/Rana718/fakeshop/internal/types"
)

const (
	KindOrder   = "order"
	KindProduct = "product"
	KindUser    = "user"
)

// Source is the read side of the store the exporter needs.
type Source interface {
	Products(ctx context.Context, filter types.ProductFilter) ([]types.Product, error)
	Users(ctx context.Context, filter types.UserFilter) ([]types.User, error)
	Orders(ctx context.Context, filter types.OrderFilter) ([]types.OrderLine, error)
}

type Exporter struct {
	source    Source
	sinks     []Sink
	corruptor *generator.DataCorruptor
	metrics   *metrics.Registry
	log       *logger.Logger
}

type Options struct {
	// Messy passes order rows through a DataCorruptor drawing from Rand.
	Messy bool
	Rand  generator.Source
}

func NewExporter(source Source, sinks []Sink, opts Options, reg *metrics.Registry, log *logger.Logger) *Exporter {
	if log == nil {
		log = logger.Nop()
	}
	if reg == nil {
		reg = metrics.NewRegistry()
	}
	e := &Exporter{
		source:  source,
		sinks:   sinks,
		metrics: reg,
		log:     log.With("component", "Exporter"),
	}
	if opts.Messy {
		rng := opts.Rand
		if rng == nil {
			rng = generator.NewSource(0)
		}
		e.corruptor = generator.NewDataCorruptor(rng)
	}
	return e
}

// Stamp names a report after its date range: "<start>_<end>", "<start>" for
// a single day, or today's date when the range is open.
func Stamp(dates types.DateRange) string {
	switch {
	case dates.Start.IsZero() && dates.End.IsZero():
		return types.Now().Format(types.DateLayout)
	case dates.End.IsZero() || types.Day(dates.Start).Equal(types.Day(dates.End)):
		return dates.Start.Format(types.DateLayout)
	case dates.Start.IsZero():
		return dates.End.Format(types.DateLayout)
	default:
		return dates.Start.Format(types.DateLayout) + "_" + dates.End.Format(types.DateLayout)
	}
}

// Orders exports order lines. It returns the number of rows written, 0 when
// nothing matched.
func (e *Exporter) Orders(ctx context.Context, filter types.OrderFilter, stamp string) (int, error) {
	lines, err := e.source.Orders(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch orders: %w", err)
	}
	rows := types.OrderRows(lines)
	if e.corruptor != nil {
		rows = e.corruptor.Corrupt(rows)
	}
	return e.write(ctx, KindOrder, types.OrderHeader, rows, stamp)
}

func (e *Exporter) Products(ctx context.Context, filter types.ProductFilter, stamp string) (int, error) {
	products, err := e.source.Products(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch products: %w", err)
	}
	return e.write(ctx, KindProduct, types.ProductHeader, types.ProductRows(products), stamp)
}

func (e *Exporter) Users(ctx context.Context, filter types.UserFilter, stamp string) (int, error) {
	users, err := e.source.Users(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch users: %w", err)
	}
	return e.write(ctx, KindUser, types.UserHeader, types.UserRows(users), stamp)
}

// ExportAll writes the orders and users created in dates and the products
// updated in dates.
func (e *Exporter) ExportAll(ctx context.Context, dates types.DateRange, stamp string) error {
	if stamp == "" {
		stamp = Stamp(dates)
	}
	if _, err := e.Orders(ctx, types.OrderFilter{OrderIDs: types.All[int64](), Created: dates}, stamp); err != nil {
		return err
	}
	if _, err := e.Products(ctx, types.ProductFilter{SKUs: types.All[string](), Updated: dates}, stamp); err != nil {
		return err
	}
	if _, err := e.Users(ctx, types.UserFilter{IDs: types.All[int64](), Created: dates}, stamp); err != nil {
		return err
	}
	return nil
}

func (e *Exporter) write(ctx context.Context, kind string, header []string, rows []types.Row, stamp string) (int, error) {
	if len(rows) == 0 {
		e.log.Info("No rows to export", "report", kind, "stamp", stamp)
		return 0, nil
	}
	if stamp == "" {
		stamp = types.Now().Format(types.DateLayout)
	}

	data, err := EncodeCSV(header, rows)
	if err != nil {
		return 0, fmt.Errorf("failed to encode %s report: %w", kind, err)
	}
	report := Report{
		Kind:     kind,
		FileName: ReportName(kind, stamp),
		Header:   header,
		Rows:     rows,
		Data:     data,
	}

	for _, sink := range e.sinks {
		if err := sink.Write(ctx, report); err != nil {
			return 0, fmt.Errorf("failed to export %s via %s: %w", report.FileName, sink.Name(), err)
		}
		e.metrics.ExportRows.WithLabelValues(sink.Name()).Add(float64(len(rows)))
		e.log.Info("Exported report", "file", report.FileName, "sink", sink.Name(), "rows", len(rows))
	}
	return len(rows), nil
}
