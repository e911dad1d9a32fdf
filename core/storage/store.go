package storage

import (
	"context"
	"fmt"
)

// Store defines the interface for artifact persistence. Keys are
// slash-separated, relative to the store root (or bucket).
type Store interface {
	// Exists reports whether an artifact is present.
	Exists(ctx context.Context, key string) (bool, error)
	// Read returns the full content of an artifact.
	Read(ctx context.Context, key string) ([]byte, error)
	// Write persists an artifact atomically: readers observe either the
	// previous content (or absence) or the complete new content, never a
	// partial write.
	Write(ctx context.Context, key string, data []byte) error
	// Remove deletes an artifact. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
}

// NewStore creates a store based on the configured driver.
func NewStore(cfg Config) (Store, error) {
	switch cfg.Driver {
	case DriverLocal:
		return NewLocalStore(cfg.Root)
	case DriverS3:
		return NewS3Store(cfg)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
