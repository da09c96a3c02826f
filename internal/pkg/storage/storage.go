package storage

import (
	"context"
	"io"
	"time"
)

// Storage is the audio artifact storage backend.
type Storage interface {
	// Upload stores a file and returns its URL.
	Upload(ctx context.Context, key string, data io.Reader, contentType string) (string, error)

	// Download opens a stored file.
	Download(ctx context.Context, key string) (io.ReadCloser, error)

	// GetPresignedDownloadURL returns a time-limited download URL.
	GetPresignedDownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, error)

	// Delete removes a file.
	Delete(ctx context.Context, key string) error

	// Exists checks whether a file exists.
	Exists(ctx context.Context, key string) (bool, error)

	// GetStorageType returns the backend name.
	GetStorageType() string
}

// StorageType identifies a backend.
type StorageType string

const (
	StorageTypeLocal StorageType = "local"
	StorageTypeOSS   StorageType = "oss"
)
