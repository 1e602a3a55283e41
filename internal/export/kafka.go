package export

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/segmentio/kafka-go"
)

// kafkaMessageWriter abstracts kafka.Writer for testability.
type kafkaMessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// KafkaSink publishes every report row as one JSON message keyed by the
// row's first column.
type KafkaSink struct {
	writer kafkaMessageWriter
}

// NewKafkaSink accepts a comma-separated broker list.
func NewKafkaSink(bootstrap, topic string) *KafkaSink {
	var brokers []string
	for _, a := range strings.Split(bootstrap, ",") {
		if a = strings.TrimSpace(a); a != "" {
			brokers = append(brokers, a)
		}
	}
	return &KafkaSink{writer: &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
	}}
}

// NewKafkaSinkWith is only for tests to inject a fake writer.
func NewKafkaSinkWith(w kafkaMessageWriter) *KafkaSink {
	return &KafkaSink{writer: w}
}

func (k *KafkaSink) Name() string { return "kafka" }

func (k *KafkaSink) Write(ctx context.Context, r Report) error {
	if len(r.Rows) == 0 {
		return nil
	}
	msgs := make([]kafka.Message, 0, len(r.Rows))
	for _, row := range r.Rows {
		record := make(map[string]string, len(r.Header)+1)
		record["report"] = r.Kind
		for i, col := range r.Header {
			if i < len(row) {
				record[col] = FormatValue(row[i])
			}
		}
		b, err := json.Marshal(record)
		if err != nil {
			return fmt.Errorf("marshal: %w", err)
		}
		var key string
		if len(row) > 0 {
			key = FormatValue(row[0])
		}
		msgs = append(msgs, kafka.Message{Key: []byte(key), Value: b})
	}
	if err := k.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("failed to publish %s report: %w", r.Kind, err)
	}
	return nil
}

func (k *KafkaSink) Close() error {
	if c, ok := k.writer.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
