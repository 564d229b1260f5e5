// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package kvstore

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

const memoryCleanupInterval = 5 * time.Minute

// Memory is an in-process Store backed by go-cache. It is safe for
// concurrent use and is lost when the process exits.
type Memory struct {
	items *gocache.Cache
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{items: gocache.New(gocache.NoExpiration, memoryCleanupInterval)}
}

// Get returns a copy of the stored value.
func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, found := m.items.Get(key)
	if !found {
		return nil, false, nil
	}
	b, _ := v.([]byte)
	return append([]byte(nil), b...), true, nil
}

// Put stores a copy of value so later caller mutations do not leak in.
func (m *Memory) Put(_ context.Context, key string, value []byte, ttl time.Duration) error {
	exp := ttl
	if exp <= 0 {
		exp = gocache.NoExpiration
	}
	m.items.Set(key, append([]byte(nil), value...), exp)
	return nil
}

// Delete removes key.
func (m *Memory) Delete(_ context.Context, key string) error {
	m.items.Delete(key)
	return nil
}

// Len reports the number of stored items, including expired ones the
// janitor has not swept yet.
func (m *Memory) Len() int {
	return m.items.ItemCount()
}

// Close is a no-op; it exists so Memory satisfies Backend.
func (m *Memory) Close() error {
	return nil
}
