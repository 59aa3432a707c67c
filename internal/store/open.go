// Package store provides the key-value backends that persist boards.
package store

import (
	"context"
	"fmt"

	"github.com/gmllt/bboard/internal/config"
)

// Store is a byte-oriented key-value store. Get reports false for a key
// that was never written.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, value []byte) error
	Close() error
}

var (
	_ Store = (*Memory)(nil)
	_ Store = (*File)(nil)
	_ Store = (*SQLite)(nil)
	_ Store = (*S3)(nil)
)

// Open returns the backend selected by cfg.Driver.
func Open(ctx context.Context, cfg config.StoreConfig) (Store, error) {
	switch cfg.Driver {
	case config.StoreDriverMemory:
		return NewMemory(), nil
	case config.StoreDriverFile, "":
		return NewFile(cfg.Path, cfg.Compress)
	case config.StoreDriverSQLite:
		return OpenSQLite(cfg.Path)
	case config.StoreDriverS3:
		s, err := NewS3(ctx, cfg.S3)
		if err != nil {
			return nil, err
		}
		if err := s.EnsureBucketExists(ctx); err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}
