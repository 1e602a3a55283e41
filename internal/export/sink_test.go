package export

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Rana718/fakeshop/internal/types"
	"github.com/segmentio/kafka-go"
)

func TestReportNaming(t *testing.T) {
	if got := ReportName(KindOrder, "2024-01-01"); got != "Order_report_2024-01-01.csv" {
		t.Errorf("unexpected name %q", got)
	}
	r := Report{Kind: KindOrder, FileName: ReportName(KindOrder, "2024-01-01_2024-01-07")}
	if got := r.ObjectKey(); got != "order_reports/Order_report_2024-01-01_2024-01-07.csv" {
		t.Errorf("unexpected object key %q", got)
	}
}

func TestFileSinkWrites(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")
	sink := NewFileSink(dir)

	r := Report{Kind: KindUser, FileName: "User_report_x.csv", Data: []byte("user_id\n1\n")}
	if err := sink.Write(context.Background(), r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := os.ReadFile(filepath.Join(dir, "User_report_x.csv"))
	if err != nil {
		t.Fatalf("failed to read report: %v", err)
	}
	if string(got) != "user_id\n1\n" {
		t.Errorf("unexpected file content %q", got)
	}
}

type fakeKafkaWriter struct {
	msgs []kafka.Message
	err  error
}

func (f *fakeKafkaWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func TestKafkaSinkOneMessagePerRow(t *testing.T) {
	w := &fakeKafkaWriter{}
	sink := NewKafkaSinkWith(w)

	r := Report{
		Kind:   KindOrder,
		Header: []string{"order_line_id", "item_sku", "item_price"},
		Rows: []types.Row{
			{int64(11), "SHOE001", nil},
			{int64(12), "HAT001", "5"},
		},
	}
	if err := sink.Write(context.Background(), r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(w.msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(w.msgs))
	}
	if string(w.msgs[0].Key) != "11" || string(w.msgs[1].Key) != "12" {
		t.Errorf("unexpected keys %q %q", w.msgs[0].Key, w.msgs[1].Key)
	}

	var record map[string]string
	if err := json.Unmarshal(w.msgs[0].Value, &record); err != nil {
		t.Fatalf("message is not json: %v", err)
	}
	if record["report"] != KindOrder || record["item_sku"] != "SHOE001" || record["item_price"] != "" {
		t.Errorf("unexpected record %v", record)
	}
}

func TestKafkaSinkPropagatesErrors(t *testing.T) {
	boom := errors.New("broker down")
	sink := NewKafkaSinkWith(&fakeKafkaWriter{err: boom})
	r := Report{Kind: KindUser, Header: []string{"user_id"}, Rows: []types.Row{{int64(1)}}}
	if err := sink.Write(context.Background(), r); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped broker error, got %v", err)
	}
}
