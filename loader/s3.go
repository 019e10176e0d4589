package loader

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3API is the subset of *s3.Client the loader uses.
type S3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// GetSnapshotBucket returns the bucket raw listings documents are archived to.
func GetSnapshotBucket() (string, error) {
	b := os.Getenv("S3_SNAPSHOT_BUCKET")
	if b == "" {
		return "", fmt.Errorf("s3 snapshot bucket not set")
	}
	return b, nil
}

// Archiver writes raw listings documents to object storage.
type Archiver struct {
	api    S3API
	bucket string
	now    func() time.Time
}

func NewArchiver(api S3API, bucket string) *Archiver {
	return &Archiver{api: api, bucket: bucket, now: time.Now}
}

// Archive stores body and returns the object key it was written to.
func (a *Archiver) Archive(ctx context.Context, source string, body []byte) (string, error) {
	key := getSnapshotKey(source, a.now())
	_, err := a.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", fmt.Errorf("put snapshot %s: %w", key, err)
	}
	return key, nil
}

// getSnapshotKey names the snapshot after the source host (URLs), bucket
// (s3 references) or file name (local paths).
func getSnapshotKey(source string, t time.Time) string {
	name := ""
	if u, err := url.Parse(source); err == nil && u.Host != "" {
		name = u.Host
	} else {
		name = strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	}
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "unknown"
	}
	return fmt.Sprintf("snapshots/%s/%d_listings.json", name, t.Unix())
}
