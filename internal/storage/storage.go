// Package storage keeps uploaded files on local disk or in a MinIO bucket.
package storage

import (
	"context"
	"fmt"
	"io"

	"socialmedia/backend/internal/config"
)

// Provider is implemented by every storage backend. Keys are slash
// separated relative paths.
type Provider interface {
	Save(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, key string) error
	URL(key string) string
}

// New returns the provider selected by cfg.StorageType.
func New(cfg *config.Config) (Provider, error) {
	switch cfg.StorageType {
	case "", "local":
		return NewLocalProvider(cfg.UploadDir), nil
	case "minio":
		return NewMinioProvider(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioUseSSL)
	default:
		return nil, fmt.Errorf("unknown storage type %q", cfg.StorageType)
	}
}
