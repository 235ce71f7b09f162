package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"
)

// BlobStore is the interface for blob storage operations.
// Paths are relative keys of the form {ownerID}/{uuid}.{ext}; the store
// never interprets them beyond using them as object keys.
type BlobStore interface {
	// Put stores the blob bytes under the given path
	Put(ctx context.Context, path string, data io.Reader, size int64, contentType string) error

	// Get retrieves a blob by path
	Get(ctx context.Context, path string) (io.ReadCloser, error)

	// SignedURL returns a time-limited URL granting read access to the blob
	// at path. The filename is attached as a content-disposition hint so
	// browsers save the download under its original name.
	SignedURL(ctx context.Context, path, filename string, ttl time.Duration) (string, error)
}

// BlobStoreType represents the storage backend type
type BlobStoreType string

const (
	BlobStoreTypeLocal BlobStoreType = "local"
	BlobStoreTypeS3    BlobStoreType = "s3"
)

// Config holds configuration for blob storage
type Config struct {
	Type          BlobStoreType
	LocalPath     string // For local storage
	SigningSecret string // For local signed URLs
	PublicBaseURL string // For local signed URLs
	S3Bucket      string // For S3 storage
	S3Region      string // For S3 storage
	AWSAccessKey  string
	AWSSecretKey  string
}

// NewBlobStore creates a blob store instance based on configuration
func NewBlobStore(cfg Config) (BlobStore, error) {
	switch cfg.Type {
	case BlobStoreTypeLocal:
		return NewLocalStore(cfg.LocalPath, cfg.SigningSecret, cfg.PublicBaseURL)
	case BlobStoreTypeS3:
		return NewS3Store(cfg)
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}

// NewBlobStoreFromEnv creates a blob store instance from environment variables
func NewBlobStoreFromEnv() (BlobStore, error) {
	storageType := os.Getenv("STORAGE_TYPE")
	if storageType == "" {
		storageType = "local" // Default to local for development
	}

	switch BlobStoreType(storageType) {
	case BlobStoreTypeLocal:
		localPath := os.Getenv("STORAGE_LOCAL_PATH")
		if localPath == "" {
			localPath = "./storage/blobs" // Default local storage path
		}
		secret := os.Getenv("STORAGE_SIGNING_SECRET")
		if secret == "" {
			return nil, errors.New("STORAGE_SIGNING_SECRET environment variable is required for local storage")
		}
		baseURL := os.Getenv("PUBLIC_BASE_URL")
		if baseURL == "" {
			baseURL = "http://localhost:8080"
		}
		return NewLocalStore(localPath, secret, baseURL)

	case BlobStoreTypeS3:
		cfg := Config{
			Type:     BlobStoreTypeS3,
			S3Bucket: os.Getenv("AWS_S3_BUCKET"),
			S3Region: os.Getenv("AWS_REGION"),
		}
		if cfg.S3Region == "" {
			cfg.S3Region = "us-east-1" // Default region
		}
		cfg.AWSAccessKey = os.Getenv("AWS_ACCESS_KEY_ID")
		cfg.AWSSecretKey = os.Getenv("AWS_SECRET_ACCESS_KEY")

		if cfg.S3Bucket == "" {
			return nil, errors.New("AWS_S3_BUCKET environment variable is required for S3 storage")
		}

		return NewS3Store(cfg)

	default:
		return nil, fmt.Errorf("unknown storage type: %s", storageType)
	}
}
