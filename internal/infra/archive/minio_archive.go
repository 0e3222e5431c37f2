package archive

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/luwei/smart-travel/internal/domain/weather"
)

// MinioArchive keeps raw provider payloads in S3-compatible object storage
// so historical readings can be replayed after a provider schema change.
type MinioArchive struct {
	client *minio.Client
	bucket string
	logger *slog.Logger
}

// NewMinioArchive constructs the archive adapter.
func NewMinioArchive(endpoint, accessKey, secretKey, bucket, region string, logger *slog.Logger) (*MinioArchive, error) {
	if logger == nil {
		logger = slog.Default()
	}
	cleanEndpoint := sanitizeEndpoint(endpoint)
	useSSL := strings.HasPrefix(strings.ToLower(endpoint), "https")
	client, err := minio.New(cleanEndpoint, &minio.Options{
		Creds:        credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure:       useSSL,
		Region:       region,
		BucketLookup: minio.BucketLookupPath,
	})
	if err != nil {
		return nil, fmt.Errorf("init archive client: %w", err)
	}
	return &MinioArchive{client: client, bucket: bucket, logger: logger.With("component", "archive.minio")}, nil
}

func (a *MinioArchive) ensureBucket(ctx context.Context) error {
	exists, err := a.client.BucketExists(ctx, a.bucket)
	if err == nil && exists {
		return nil
	}
	err = a.client.MakeBucket(ctx, a.bucket, minio.MakeBucketOptions{})
	if err != nil && minio.ToErrorResponse(err).Code != "BucketAlreadyOwnedByYou" {
		return err
	}
	return nil
}

// Store uploads a raw payload under the given key.
func (a *MinioArchive) Store(ctx context.Context, key string, payload []byte) error {
	if err := a.ensureBucket(ctx); err != nil {
		return err
	}
	reader := bytes.NewReader(payload)
	_, err := a.client.PutObject(ctx, a.bucket, key, reader, int64(len(payload)), minio.PutObjectOptions{
		ContentType:      "application/json",
		DisableMultipart: true, // payloads are small API responses
	})
	if err != nil {
		return err
	}
	a.logger.Debug("payload archived", "key", key, "bytes", len(payload))
	return nil
}

var _ weather.Archive = (*MinioArchive)(nil)

// sanitizeEndpoint removes schemes and paths to satisfy minio.New expectations.
func sanitizeEndpoint(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return raw
	}
	raw = strings.TrimPrefix(strings.TrimPrefix(raw, "https://"), "http://")
	if strings.Contains(raw, "/") {
		parts := strings.Split(raw, "/")
		raw = parts[0]
	}
	return raw
}
