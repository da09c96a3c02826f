package local

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"revcast/internal/pkg/storage"
)

// LocalStorage stores artifacts on the local filesystem, serving them
// through the configured base URL.
type LocalStorage struct {
	basePath      string
	baseURL       string
	presignExpiry int // seconds
}

// NewLocalStorage creates a filesystem storage backend.
func NewLocalStorage(basePath, baseURL string, presignExpiry int) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base path: %w", err)
	}

	return &LocalStorage{
		basePath:      basePath,
		baseURL:       strings.TrimSuffix(baseURL, "/"),
		presignExpiry: presignExpiry,
	}, nil
}

// Upload stores a file and returns its URL.
func (s *LocalStorage) Upload(ctx context.Context, key string, data io.Reader, contentType string) (string, error) {
	fullPath := filepath.Join(s.basePath, key)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, data); err != nil {
		os.Remove(fullPath)
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return s.getFileURL(key), nil
}

// Download opens a stored file.
func (s *LocalStorage) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	fullPath := filepath.Join(s.basePath, key)

	file, err := os.Open(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file not found: %s", key)
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	return file, nil
}

// GetPresignedDownloadURL returns the file URL. The local backend has
// no signing; URLs are stable.
func (s *LocalStorage) GetPresignedDownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, error) {
	return s.getFileURL(key), nil
}

// Delete removes a file. A missing file counts as deleted.
func (s *LocalStorage) Delete(ctx context.Context, key string) error {
	fullPath := filepath.Join(s.basePath, key)
	if err := os.Remove(fullPath); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// Exists checks whether a file exists.
func (s *LocalStorage) Exists(ctx context.Context, key string) (bool, error) {
	fullPath := filepath.Join(s.basePath, key)
	_, err := os.Stat(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// GetStorageType returns the backend name.
func (s *LocalStorage) GetStorageType() string {
	return string(storage.StorageTypeLocal)
}

func (s *LocalStorage) getFileURL(key string) string {
	urlKey := strings.ReplaceAll(key, "\\", "/")
	return fmt.Sprintf("%s/%s", s.baseURL, urlKey)
}
