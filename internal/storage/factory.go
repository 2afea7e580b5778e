package storage

import (
	"fmt"

	"github.com/lunaria/arcana/internal/config"
)

// NewAssetStore creates an AssetStore from the assets configuration.
// The backend is "local" (default) or "s3"; "r2" is accepted as an
// alias for "s3" since R2 speaks the same protocol.
func NewAssetStore(cfg *config.AssetsConfig) (AssetStore, error) {
	switch cfg.Backend {
	case "", "local":
		return NewLocalStore(cfg.LocalDir), nil
	case "s3", "r2":
		return NewS3Store(&S3Config{
			Endpoint:  cfg.Endpoint,
			Region:    cfg.Region,
			AccessKey: cfg.AccessKey,
			SecretKey: cfg.SecretKey,
			Bucket:    cfg.Bucket,
		})
	}
	return nil, fmt.Errorf("unknown asset backend %q", cfg.Backend)
}
