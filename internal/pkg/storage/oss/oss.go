package oss

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"

	"revcast/internal/pkg/storage"
)

// OSSStorage stores artifacts in an Aliyun OSS bucket.
type OSSStorage struct {
	bucket        *oss.Bucket
	bucketName    string
	presignExpiry int // seconds
}

// NewOSSStorage creates an OSS storage backend.
func NewOSSStorage(endpoint, bucketName, accessKeyID, accessKeySecret string, presignExpiry int) (*OSSStorage, error) {
	client, err := oss.New(endpoint, accessKeyID, accessKeySecret)
	if err != nil {
		return nil, fmt.Errorf("failed to create OSS client: %w", err)
	}

	bucket, err := client.Bucket(bucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to get bucket: %w", err)
	}

	return &OSSStorage{
		bucket:        bucket,
		bucketName:    bucketName,
		presignExpiry: presignExpiry,
	}, nil
}

// Upload stores a file and returns its URL.
func (s *OSSStorage) Upload(ctx context.Context, key string, data io.Reader, contentType string) (string, error) {
	options := []oss.Option{
		oss.ContentType(contentType),
	}

	if err := s.bucket.PutObject(key, data, options...); err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	url := fmt.Sprintf("https://%s.%s/%s", s.bucketName, s.bucket.Client.Config.Endpoint, key)
	return url, nil
}

// Download opens a stored file.
func (s *OSSStorage) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	body, err := s.bucket.GetObject(key)
	if err != nil {
		return nil, fmt.Errorf("failed to download file: %w", err)
	}
	return body, nil
}

// GetPresignedDownloadURL returns a signed, time-limited download URL.
// The configured expiry caps the requested one.
func (s *OSSStorage) GetPresignedDownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, error) {
	expiry := expiresIn
	if time.Duration(s.presignExpiry)*time.Second < expiresIn {
		expiry = time.Duration(s.presignExpiry) * time.Second
	}

	url, err := s.bucket.SignURL(key, oss.HTTPGet, int64(expiry.Seconds()))
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned download URL: %w", err)
	}

	return url, nil
}

// Delete removes a file.
func (s *OSSStorage) Delete(ctx context.Context, key string) error {
	if err := s.bucket.DeleteObject(key); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// Exists checks whether a file exists.
func (s *OSSStorage) Exists(ctx context.Context, key string) (bool, error) {
	exists, err := s.bucket.IsObjectExist(key)
	if err != nil {
		return false, fmt.Errorf("failed to check file existence: %w", err)
	}
	return exists, nil
}

// GetStorageType returns the backend name.
func (s *OSSStorage) GetStorageType() string {
	return string(storage.StorageTypeOSS)
}
