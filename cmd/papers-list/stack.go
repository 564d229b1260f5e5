// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/a10y/papers-list/internal/cache"
	"github.com/a10y/papers-list/internal/httputil"
	"github.com/a10y/papers-list/internal/kvstore"
	"github.com/a10y/papers-list/internal/metrics"
	"github.com/a10y/papers-list/internal/papers"
	"github.com/a10y/papers-list/internal/server"
	"github.com/a10y/papers-list/internal/zotero"
	"github.com/a10y/papers-list/pkg/types"
)

// stack holds the process-wide collaborators built from Config.
type stack struct {
	store kvstore.Backend
	deps  server.Deps
}

// newStack validates c and opens the store. The caller must Close the
// returned stack.
func newStack(ctx context.Context, c types.Config) (*stack, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	store, err := kvstore.Open(ctx, c.Store)
	if err != nil {
		return nil, err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	hc := &http.Client{
		Timeout:   c.HTTP.Timeout,
		Transport: m.InstrumentTransport(http.DefaultTransport),
	}

	return &stack{
		store: store,
		deps: server.Deps{
			Store:      store,
			HTTPClient: hc,
			Limiter:    httputil.NewLimiter(c.Zotero.RateLimit),
			Logger:     logger,
			Metrics:    m,
			Registry:   reg,
		},
	}, nil
}

// service returns a papers service over the stack's store, for CLI use.
func (r *stack) service(c types.Config) *papers.Service {
	client := zotero.NewClient(c.Zotero,
		zotero.WithHTTPClient(r.deps.HTTPClient),
		zotero.WithLimiter(r.deps.Limiter),
		zotero.WithLogger(r.deps.Logger),
		zotero.WithUserAgent(c.HTTP.UserAgent),
	)
	return papers.NewService(r.store, client,
		cache.WithTTL(c.Cache.TTL),
		cache.WithLogger(r.deps.Logger),
		cache.WithObserver(r.deps.Metrics),
	)
}

func (r *stack) Close() error {
	return r.store.Close()
}
