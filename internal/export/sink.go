package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Rana718/fakeshop/internal/types"
)

// Report is one rendered export file.
type Report struct {
	Kind     string
	FileName string
	Header   []string
	Rows     []types.Row
	Data     []byte
}

// ObjectKey is the report's path inside a bucket, e.g. order_reports/Order_report_2024-01-01.csv.
func (r Report) ObjectKey() string {
	return r.Kind + "_reports/" + r.FileName
}

// ReportName builds "<Kind>_report_<stamp>.csv".
func ReportName(kind, stamp string) string {
	return strings.ToUpper(kind[:1]) + kind[1:] + "_report_" + stamp + ".csv"
}

type Sink interface {
	Name() string
	Write(ctx context.Context, r Report) error
}

// FileSink writes reports into a local directory.
type FileSink struct {
	Dir string
}

func NewFileSink(dir string) *FileSink {
	if dir == "" {
		dir = "."
	}
	return &FileSink{Dir: dir}
}

func (f *FileSink) Name() string { return "file" }

func (f *FileSink) Write(ctx context.Context, r Report) error {
	if err := os.MkdirAll(f.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}
	path := filepath.Join(f.Dir, r.FileName)
	if err := os.WriteFile(path, r.Data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}
