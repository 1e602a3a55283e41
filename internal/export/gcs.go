package export

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

const uploadTimeout = 2 * time.Minute

// GCSSink uploads reports to a Cloud Storage bucket under <kind>_reports/.
type GCSSink struct {
	client *storage.Client
	bucket string
}

// NewGCSSink builds a storage client. With emulatorHost set it talks to a
// local emulator without credentials.
func NewGCSSink(ctx context.Context, bucket, emulatorHost string) (*GCSSink, error) {
	if strings.TrimSpace(bucket) == "" {
		return nil, fmt.Errorf("storage bucket name is empty")
	}

	var opts []option.ClientOption
	if host := strings.TrimRight(strings.TrimSpace(emulatorHost), "/"); host != "" {
		_ = os.Setenv("STORAGE_EMULATOR_HOST", host)
		opts = append(opts, option.WithoutAuthentication())
	} else {
		opts = append(opts, option.WithScopes(storage.ScopeReadWrite))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	return &GCSSink{client: client, bucket: bucket}, nil
}

func (g *GCSSink) Name() string { return "gcs" }

func (g *GCSSink) Write(ctx context.Context, r Report) error {
	ctx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	w := g.client.Bucket(g.bucket).Object(r.ObjectKey()).NewWriter(ctx)
	w.ContentType = "text/csv"
	if _, err := io.Copy(w, bytes.NewReader(r.Data)); err != nil {
		_ = w.Close()
		return fmt.Errorf("failed to write data to GCS: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close GCS writer: %w", err)
	}
	return nil
}

func (g *GCSSink) Close() error { return g.client.Close() }
