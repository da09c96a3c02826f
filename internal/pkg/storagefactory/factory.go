package storagefactory

import (
	"context"
	"fmt"

	"revcast/internal/config"
	"revcast/internal/pkg/storage"
	"revcast/internal/pkg/storage/local"
	"revcast/internal/pkg/storage/oss"
)

// NewStorage creates the storage backend selected by configuration.
func NewStorage(ctx context.Context, cfg *config.StorageConfig) (storage.Storage, error) {
	switch cfg.Type {
	case "local":
		if cfg.Local == nil {
			return nil, fmt.Errorf("local storage config is required")
		}
		return local.NewLocalStorage(
			cfg.Local.BasePath,
			cfg.Local.BaseURL,
			cfg.Local.PresignExpiry,
		)
	case "oss":
		if cfg.OSS == nil {
			return nil, fmt.Errorf("OSS storage config is required")
		}
		return oss.NewOSSStorage(
			cfg.OSS.Endpoint,
			cfg.OSS.Bucket,
			cfg.OSS.AccessKeyID,
			cfg.OSS.AccessKeySecret,
			cfg.OSS.PresignExpiry,
		)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}
