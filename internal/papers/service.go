// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package papers serves the collection listing and paper details through
// the TTL cache. A Service is cheap to build and is meant to be created per
// request over a shared store and upstream.
package papers

import (
	"context"

	"github.com/a10y/papers-list/internal/cache"
	"github.com/a10y/papers-list/internal/kvstore"
	"github.com/a10y/papers-list/pkg/types"
)

// ListKey is the cache key of the collection listing.
const ListKey = "papers:list"

// ItemKey returns the cache key of one paper detail.
func ItemKey(id string) string {
	return "papers:" + id
}

// Upstream fetches papers from the reference manager. *zotero.Client
// satisfies it.
type Upstream interface {
	GetCollectionItems(ctx context.Context) ([]types.Paper, error)
	GetItem(ctx context.Context, key string) (*types.PaperDetail, error)
}

// Service reads papers through the cache, falling back to upstream.
type Service struct {
	upstream Upstream
	list     *cache.Cache[[]types.Paper]
	items    *cache.Cache[*types.PaperDetail]
}

// NewService returns a Service over store and upstream. opts apply to both
// the listing and detail caches.
func NewService(store kvstore.Store, upstream Upstream, opts ...cache.Option) *Service {
	return &Service{
		upstream: upstream,
		list:     cache.New[[]types.Paper](store, opts...),
		items:    cache.New[*types.PaperDetail](store, opts...),
	}
}

// List returns the papers in the collection.
func (s *Service) List(ctx context.Context) ([]types.Paper, error) {
	return s.list.GetOrFetch(ctx, ListKey, s.upstream.GetCollectionItems)
}

// Get returns the paper with the given id, or nil when it does not exist.
func (s *Service) Get(ctx context.Context, id string) (*types.PaperDetail, error) {
	return s.items.GetOrFetch(ctx, ItemKey(id), func(ctx context.Context) (*types.PaperDetail, error) {
		return s.upstream.GetItem(ctx, id)
	})
}
