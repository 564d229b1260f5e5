// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cache implements a read-through TTL cache over a kvstore.Store.
//
// Entries are stored as JSON {"data": ..., "timestamp": <unix ms>}. Expiry
// is lazy: Get deletes an entry it finds older than the TTL. Every write
// also carries a store-level expiration of twice the TTL so keys that are
// never read again still disappear. A Cache holds no locks and is meant to
// be built per request; concurrent misses on one key may each invoke the
// producer.
package cache

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/a10y/papers-list/internal/kvstore"
)

// DefaultTTL is used when no TTL option is given.
const DefaultTTL = 60 * time.Second

// backstopFactor multiplies the TTL for the store-level expiration.
const backstopFactor = 2

// Entry is the stored envelope around a cached value.
type Entry[T any] struct {
	Data      T     `json:"data"`
	Timestamp int64 `json:"timestamp"`
}

// Observer receives one event per Get outcome.
type Observer interface {
	Hit(key string)
	Miss(key string)
	Expired(key string)
	DecodeFailed(key string)
}

type options struct {
	ttl      time.Duration
	now      func() time.Time
	observer Observer
	logger   zerolog.Logger
}

// Option configures a Cache.
type Option func(*options)

// WithTTL sets the time-to-live. Values of zero or less keep DefaultTTL.
func WithTTL(ttl time.Duration) Option {
	return func(o *options) {
		if ttl > 0 {
			o.ttl = ttl
		}
	}
}

// WithClock replaces time.Now (for testing).
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// WithObserver attaches an Observer, typically a metrics recorder.
func WithObserver(obs Observer) Option {
	return func(o *options) {
		o.observer = obs
	}
}

// WithLogger sets the logger used for decode warnings.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// Cache is a TTL cache of values of type T.
type Cache[T any] struct {
	store kvstore.Store
	options
}

// New creates a Cache over store.
func New[T any](store kvstore.Store, opts ...Option) *Cache[T] {
	o := options{
		ttl:      DefaultTTL,
		now:      time.Now,
		observer: nopObserver{},
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &Cache[T]{store: store, options: o}
}

// TTL returns the configured time-to-live.
func (c *Cache[T]) TTL() time.Duration {
	return c.ttl
}

// Get returns the cached value for key. found is false when the key is
// missing, its entry is older than the TTL (the entry is deleted), its
// data is null, or the stored bytes cannot be decoded. Only store
// failures are returned as errors.
func (c *Cache[T]) Get(ctx context.Context, key string) (value T, found bool, err error) {
	var zero T

	raw, ok, err := c.store.Get(ctx, key)
	if err != nil {
		return zero, false, &StoreError{Op: "get", Key: key, Err: err}
	}
	if !ok {
		c.observer.Miss(key)
		return zero, false, nil
	}

	entry, present, err := decode[T](key, raw)
	if err != nil {
		var decodeErr *DecodeError
		if errors.As(err, &decodeErr) {
			c.logger.Warn().Err(err).Str("key", key).Msg("discarding undecodable cache entry")
			c.observer.DecodeFailed(key)
			return zero, false, nil
		}
		return zero, false, err
	}
	if !present {
		c.observer.Miss(key)
		return zero, false, nil
	}

	age := c.now().Sub(time.UnixMilli(entry.Timestamp))
	if age > c.ttl {
		c.observer.Expired(key)
		if err := c.store.Delete(ctx, key); err != nil {
			return zero, false, &StoreError{Op: "delete", Key: key, Err: err}
		}
		return zero, false, nil
	}

	c.observer.Hit(key)
	return entry.Data, true, nil
}

// Set stores data under key stamped with the current time. The store
// expiration is twice the TTL.
func (c *Cache[T]) Set(ctx context.Context, key string, data T) error {
	raw, err := json.Marshal(Entry[T]{Data: data, Timestamp: c.now().UnixMilli()})
	if err != nil {
		return fmt.Errorf("encoding cache entry %s: %w", key, err)
	}
	if err := c.store.Put(ctx, key, raw, backstopFactor*c.ttl); err != nil {
		return &StoreError{Op: "put", Key: key, Err: err}
	}
	return nil
}

// GetOrFetch returns the live cached value for key, or calls producer
// once, stores its result, and returns it. Producer errors are returned
// unchanged and nothing is stored.
func (c *Cache[T]) GetOrFetch(ctx context.Context, key string, producer func(context.Context) (T, error)) (T, error) {
	var zero T

	cached, found, err := c.Get(ctx, key)
	if err != nil {
		return zero, err
	}
	if found {
		return cached, nil
	}

	data, err := producer(ctx)
	if err != nil {
		return zero, err
	}
	if err := c.Set(ctx, key, data); err != nil {
		return zero, err
	}
	return data, nil
}

// storedEntry defers decoding of data until null has been ruled out.
type storedEntry struct {
	Data      json.RawMessage `json:"data"`
	Timestamp int64           `json:"timestamp"`
}

// decode parses raw into an Entry. present is false when the stored data
// is JSON null or missing.
func decode[T any](key string, raw []byte) (Entry[T], bool, error) {
	var stored storedEntry
	if err := json.Unmarshal(raw, &stored); err != nil {
		return Entry[T]{}, false, &DecodeError{Key: key, Err: err}
	}
	if len(stored.Data) == 0 || bytes.Equal(bytes.TrimSpace(stored.Data), []byte("null")) {
		return Entry[T]{}, false, nil
	}

	entry := Entry[T]{Timestamp: stored.Timestamp}
	if err := json.Unmarshal(stored.Data, &entry.Data); err != nil {
		return Entry[T]{}, false, &DecodeError{Key: key, Err: err}
	}
	return entry, true, nil
}

type nopObserver struct{}

func (nopObserver) Hit(string)          {}
func (nopObserver) Miss(string)         {}
func (nopObserver) Expired(string)      {}
func (nopObserver) DecodeFailed(string) {}
