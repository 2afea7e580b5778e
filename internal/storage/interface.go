package storage

import (
	"context"
	"io"
)

// AssetStore is read-only access to deck reference art. Keys are
// slug-safe paths like "rws-1909/major-00-the-fool.webp".
type AssetStore interface {
	// Open returns the asset content for a key.
	Open(ctx context.Context, key string) (io.ReadCloser, error)

	// Exists checks whether an asset is available without reading it.
	Exists(ctx context.Context, key string) (bool, error)
}
