// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package kvstore provides string-keyed blob stores with optional
// per-key expiration. Values are opaque bytes; callers own serialization.
package kvstore

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/a10y/papers-list/pkg/types"
)

// Store is a key-value store with optional expiration.
type Store interface {
	// Get returns the value for key. found is false when the key is
	// missing or its expiration has passed.
	Get(ctx context.Context, key string) (value []byte, found bool, err error)

	// Put stores value under key. A ttl of zero or less never expires.
	Put(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// Backend is a Store that holds resources which must be released.
type Backend interface {
	Store
	io.Closer
}

const defaultSQLitePath = "papers-list.db"

// Open constructs the backend selected by cfg.Backend. An empty backend
// selects the in-memory store.
func Open(ctx context.Context, cfg types.StoreConfig) (Backend, error) {
	switch cfg.Backend {
	case types.StoreMemory, "":
		return NewMemory(), nil
	case types.StoreRedis:
		if cfg.RedisURL == "" {
			return nil, fmt.Errorf("redis backend requires store.redis_url")
		}
		return NewRedis(ctx, cfg.RedisURL)
	case types.StoreSQLite:
		path := cfg.SQLitePath
		if path == "" {
			path = defaultSQLitePath
		}
		return NewSQLite(path)
	default:
		return nil, fmt.Errorf("unsupported store backend %q: use memory, redis, or sqlite", cfg.Backend)
	}
}
