package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/brojonat/annonces/loader"
)

// buildLoader wires object storage in only when a source lives in S3 or
// snapshots are archived there.
func buildLoader(ctx context.Context, l *slog.Logger, primary, fallback string) (*loader.Loader, error) {
	if primary == "" {
		return nil, fmt.Errorf("must supply a listings url")
	}
	opts := []loader.Option{loader.WithLogger(l)}

	bucket, bucketErr := loader.GetSnapshotBucket()
	if bucketErr == nil || strings.HasPrefix(primary, "s3://") || strings.HasPrefix(fallback, "s3://") {
		cfg, err := config.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("could not load aws config: %w", err)
		}
		s3Client := s3.NewFromConfig(cfg)
		opts = append(opts, loader.WithS3(s3Client))
		if bucketErr == nil {
			opts = append(opts, loader.WithArchiver(loader.NewArchiver(s3Client, bucket)))
		}
	}
	return loader.New(primary, fallback, opts...), nil
}
