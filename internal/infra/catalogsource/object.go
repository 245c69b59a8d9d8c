package catalogsource

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/yanqian/skinfit/internal/domain/catalog"
)

// ObjectSource reads the catalog from an S3-compatible bucket (R2, MinIO, S3).
type ObjectSource struct {
	client *minio.Client
	bucket string
	key    string
	logger *slog.Logger
}

// ObjectOptions describes where the catalog object lives.
type ObjectOptions struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	Key             string
	Region          string
	UseSSL          bool
}

// NewObjectSource constructs the object store adapter.
func NewObjectSource(opts ObjectOptions, logger *slog.Logger) (*ObjectSource, error) {
	if logger == nil {
		logger = slog.Default()
	}
	useSSL := opts.UseSSL || strings.HasPrefix(strings.ToLower(opts.Endpoint), "https")
	client, err := minio.New(sanitizeEndpoint(opts.Endpoint), &minio.Options{
		Creds:        credentials.NewStaticV4(opts.AccessKeyID, opts.SecretAccessKey, ""),
		Secure:       useSSL,
		Region:       opts.Region,
		BucketLookup: minio.BucketLookupPath,
	})
	if err != nil {
		return nil, fmt.Errorf("init object store client: %w", err)
	}
	return &ObjectSource{
		client: client,
		bucket: opts.Bucket,
		key:    opts.Key,
		logger: logger.With("component", "catalogsource.object"),
	}, nil
}

// Open implements catalog.Source.
func (s *ObjectSource) Open(ctx context.Context) (io.ReadCloser, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, s.key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get catalog object: %w", err)
	}
	// GetObject is lazy; Stat surfaces a missing key before parsing starts.
	info, err := obj.Stat()
	if err != nil {
		_ = obj.Close()
		return nil, fmt.Errorf("stat catalog object: %w", err)
	}
	s.logger.InfoContext(ctx, "catalog object opened", "bucket", s.bucket, "key", s.key, "size", info.Size, "etag", info.ETag)
	return obj, nil
}

// Describe implements catalog.Source.
func (s *ObjectSource) Describe() string {
	return fmt.Sprintf("object:%s/%s", s.bucket, s.key)
}

var _ catalog.Source = (*ObjectSource)(nil)

// sanitizeEndpoint removes schemes and paths to satisfy minio.New expectations.
func sanitizeEndpoint(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return raw
	}
	raw = strings.TrimPrefix(strings.TrimPrefix(raw, "https://"), "http://")
	if i := strings.Index(raw, "/"); i >= 0 {
		raw = raw[:i]
	}
	return raw
}
