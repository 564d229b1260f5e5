// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package zotero talks to the Zotero Web API v3 and maps its item records
// to the papers-list domain types.
package zotero

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/a10y/papers-list/internal/httputil"
	"github.com/a10y/papers-list/pkg/types"
)

// DefaultBaseURL is the public Zotero API root.
const DefaultBaseURL = "https://api.zotero.org"

// APIVersion is sent in the Zotero-API-Version header.
const APIVersion = "3"

// PageSize is the fixed item limit for collection listings.
const PageSize = 100

const defaultUserAgent = "papers-list/0.1"

// Client reads items from one user library. A Client holds no mutable
// state of its own; the http.Client and limiter may be shared.
type Client struct {
	cfg       types.ZoteroConfig
	baseURL   string
	http      *http.Client
	limiter   *rate.Limiter
	userAgent string
	logger    zerolog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithBaseURL overrides the API root, e.g. an httptest server.
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		if u != "" {
			c.baseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithLimiter makes every request wait on limiter before dispatch.
func WithLimiter(l *rate.Limiter) ClientOption {
	return func(c *Client) {
		c.limiter = l
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithLogger sets the request logger.
func WithLogger(logger zerolog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient returns a Client for the library and collection in cfg.
// cfg.BaseURL, when set, is applied before opts.
func NewClient(cfg types.ZoteroConfig, opts ...ClientOption) *Client {
	c := &Client{
		cfg:       cfg,
		baseURL:   DefaultBaseURL,
		http:      &http.Client{Timeout: 30 * time.Second},
		userAgent: defaultUserAgent,
		logger:    zerolog.Nop(),
	}
	WithBaseURL(cfg.BaseURL)(c)
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetCollectionItems returns the papers in the configured collection, in
// upstream order. Attachments are excluded by the query and items whose
// type is not a paper type are dropped. At most PageSize items are read.
func (c *Client) GetCollectionItems(ctx context.Context) ([]types.Paper, error) {
	path := fmt.Sprintf("/collections/%s/items?itemType=-attachment&limit=%d",
		url.PathEscape(c.cfg.CollectionID), PageSize)

	var items []RawItem
	if err := c.get(ctx, path, &items); err != nil {
		return nil, fmt.Errorf("fetching collection items: %w", err)
	}

	papers := make([]types.Paper, 0, len(items))
	for _, item := range items {
		if !IsPaperType(item.Data.ItemType) {
			continue
		}
		papers = append(papers, ToPaper(item))
	}
	return papers, nil
}

// GetItem returns the paper with the given key together with its notes
// and tags. It returns nil without error when the item does not exist or
// is not a paper type.
func (c *Client) GetItem(ctx context.Context, key string) (*types.PaperDetail, error) {
	itemPath := "/items/" + url.PathEscape(key)

	var item RawItem
	if err := c.get(ctx, itemPath, &item); err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetching item %s: %w", key, err)
	}
	if !IsPaperType(item.Data.ItemType) {
		return nil, nil
	}

	var children []RawItem
	if err := c.get(ctx, itemPath+"/children", &children); err != nil {
		return nil, fmt.Errorf("fetching children of %s: %w", key, err)
	}

	notes := make([]types.Note, 0, len(children))
	for _, child := range children {
		if child.Data.ItemType == "note" {
			notes = append(notes, ToNote(child))
		}
	}

	detail := ToPaperDetail(item, notes)
	return &detail, nil
}

// get issues GET <base>/users/<uid><path> and decodes the JSON body into v.
func (c *Client) get(ctx context.Context, path string, v any) error {
	reqURL := c.baseURL + "/users/" + url.PathEscape(c.cfg.UserID) + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Zotero-API-Key", c.cfg.APIKey)
	req.Header.Set("Zotero-API-Version", APIVersion)
	req.Header.Set("User-Agent", c.userAgent)

	start := time.Now()
	resp, err := httputil.Do(ctx, c.http, c.limiter, req)
	if err != nil {
		return fmt.Errorf("zotero request %s: %w", path, err)
	}
	defer resp.Body.Close()

	c.logger.Debug().
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("zotero request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{
			StatusCode: resp.StatusCode,
			Status:     http.StatusText(resp.StatusCode),
			Path:       path,
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("parsing zotero response for %s: %w", path, err)
	}
	return nil
}
