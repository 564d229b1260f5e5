// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package zotero

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a10y/papers-list/pkg/types"
)

func testConfig() types.ZoteroConfig {
	return types.ZoteroConfig{
		UserID:       "12345",
		APIKey:       "test-key",
		CollectionID: "COLL1",
	}
}

// fakeZotero serves canned JSON by request path and records requests.
type fakeZotero struct {
	mu       sync.Mutex
	routes   map[string]any
	statuses map[string]int
	requests []*http.Request
}

func newFakeZotero() *fakeZotero {
	return &fakeZotero{routes: map[string]any{}, statuses: map[string]int{}}
}

func (f *fakeZotero) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.requests = append(f.requests, r)
	status, hasStatus := f.statuses[r.URL.Path]
	body, hasBody := f.routes[r.URL.Path]
	f.mu.Unlock()

	if hasStatus {
		w.WriteHeader(status)
		return
	}
	if !hasBody {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(body)
}

func (f *fakeZotero) start(t *testing.T) (*httptest.Server, *Client) {
	t.Helper()
	ts := httptest.NewServer(f)
	t.Cleanup(ts.Close)
	return ts, NewClient(testConfig(), WithBaseURL(ts.URL), WithHTTPClient(ts.Client()))
}

func noteItem(key, content string) RawItem {
	return RawItem{Key: key, Data: ItemData{Key: key, ItemType: "note", Note: content, ParentItem: "ABC123"}}
}

// --- Request construction ---

func TestClientSendsHeadersAndPaths(t *testing.T) {
	f := newFakeZotero()
	f.routes["/users/12345/collections/COLL1/items"] = []RawItem{}
	_, c := f.start(t)

	_, err := c.GetCollectionItems(context.Background())
	require.NoError(t, err)

	require.Len(t, f.requests, 1)
	r := f.requests[0]
	assert.Equal(t, "test-key", r.Header.Get("Zotero-API-Key"))
	assert.Equal(t, "3", r.Header.Get("Zotero-API-Version"))
	assert.Equal(t, "papers-list/0.1", r.Header.Get("User-Agent"))
	assert.Equal(t, "-attachment", r.URL.Query().Get("itemType"))
	assert.Equal(t, "100", r.URL.Query().Get("limit"))
}

func TestClientBaseURLFromConfig(t *testing.T) {
	f := newFakeZotero()
	f.routes["/users/12345/collections/COLL1/items"] = []RawItem{}
	ts := httptest.NewServer(f)
	defer ts.Close()

	cfg := testConfig()
	cfg.BaseURL = ts.URL + "/"
	c := NewClient(cfg, WithHTTPClient(ts.Client()), WithUserAgent("custom/1.0"))

	_, err := c.GetCollectionItems(context.Background())
	require.NoError(t, err)
	require.Len(t, f.requests, 1)
	assert.Equal(t, "custom/1.0", f.requests[0].Header.Get("User-Agent"))
}

// --- GetCollectionItems ---

func TestGetCollectionItemsFiltersAndPreservesOrder(t *testing.T) {
	mk := func(key, typ string) RawItem {
		return RawItem{Key: key, Data: ItemData{Key: key, ItemType: typ, Title: key}}
	}
	f := newFakeZotero()
	f.routes["/users/12345/collections/COLL1/items"] = []RawItem{
		mk("P1", "journalArticle"),
		mk("W1", "webpage"),
		mk("P2", "thesis"),
		mk("N1", "note"),
		mk("P3", "preprint"),
	}
	_, c := f.start(t)

	papers, err := c.GetCollectionItems(context.Background())
	require.NoError(t, err)

	var ids []string
	for _, p := range papers {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"P1", "P2", "P3"}, ids)
}

func TestGetCollectionItemsEmpty(t *testing.T) {
	f := newFakeZotero()
	f.routes["/users/12345/collections/COLL1/items"] = []RawItem{
		{Key: "W1", Data: ItemData{Key: "W1", ItemType: "webpage"}},
	}
	_, c := f.start(t)

	papers, err := c.GetCollectionItems(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, papers)
	assert.Empty(t, papers)
}

func TestGetCollectionItemsUpstreamError(t *testing.T) {
	f := newFakeZotero()
	f.statuses["/users/12345/collections/COLL1/items"] = http.StatusInternalServerError
	_, c := f.start(t)

	_, err := c.GetCollectionItems(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Contains(t, err.Error(), "zotero API error: 500 Internal Server Error")
	assert.False(t, IsNotFound(err))
}

func TestGetCollectionItemsMalformedBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("<html>oops</html>"))
	}))
	defer ts.Close()
	c := NewClient(testConfig(), WithBaseURL(ts.URL), WithHTTPClient(ts.Client()))

	_, err := c.GetCollectionItems(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing zotero response")
}

// --- GetItem ---

func TestGetItemWithNotes(t *testing.T) {
	f := newFakeZotero()
	f.routes["/users/12345/items/ABC123"] = testRawItem()
	f.routes["/users/12345/items/ABC123/children"] = []RawItem{
		noteItem("NOTE123", "<p>This is a test note</p>"),
		{Key: "ATT1", Data: ItemData{Key: "ATT1", ItemType: "attachment"}},
		noteItem("NOTE456", "<p>Second</p>"),
	}
	_, c := f.start(t)

	d, err := c.GetItem(context.Background(), "ABC123")
	require.NoError(t, err)
	require.NotNil(t, d)

	assert.Equal(t, "ABC123", d.ID)
	assert.Equal(t, []string{"John Doe", "Jane Smith"}, d.Authors)
	assert.Equal(t, []types.Note{
		{ID: "NOTE123", Content: "<p>This is a test note</p>"},
		{ID: "NOTE456", Content: "<p>Second</p>"},
	}, d.Notes)
	assert.ElementsMatch(t, []string{"machine-learning", "research"}, d.Tags)
	require.Len(t, f.requests, 2)
}

func TestGetItemNotFound(t *testing.T) {
	f := newFakeZotero()
	_, c := f.start(t)

	d, err := c.GetItem(context.Background(), "NOTFOUND")
	require.NoError(t, err)
	assert.Nil(t, d)
	assert.Len(t, f.requests, 1, "children should not be fetched")
}

func TestGetItemNonPaperType(t *testing.T) {
	f := newFakeZotero()
	f.routes["/users/12345/items/WEB1"] = RawItem{Key: "WEB1", Data: ItemData{Key: "WEB1", ItemType: "webpage"}}
	_, c := f.start(t)

	d, err := c.GetItem(context.Background(), "WEB1")
	require.NoError(t, err)
	assert.Nil(t, d)
	assert.Len(t, f.requests, 1)
}

func TestGetItemUpstreamErrorPropagates(t *testing.T) {
	f := newFakeZotero()
	f.statuses["/users/12345/items/ABC123"] = http.StatusForbidden
	_, c := f.start(t)

	d, err := c.GetItem(context.Background(), "ABC123")
	require.Error(t, err)
	assert.Nil(t, d)
	assert.Contains(t, err.Error(), "403")
}

func TestGetItemChildrenErrorPropagates(t *testing.T) {
	f := newFakeZotero()
	f.routes["/users/12345/items/ABC123"] = testRawItem()
	f.statuses["/users/12345/items/ABC123/children"] = http.StatusNotFound
	_, c := f.start(t)

	_, err := c.GetItem(context.Background(), "ABC123")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetching children of ABC123")
}

func TestGetItemEscapesKey(t *testing.T) {
	f := newFakeZotero()
	_, c := f.start(t)

	_, err := c.GetItem(context.Background(), "a/b")
	require.NoError(t, err)
	require.Len(t, f.requests, 1)
	assert.Equal(t, "/users/12345/items/a%2Fb", f.requests[0].URL.EscapedPath())
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(&APIError{StatusCode: 404}))
	assert.True(t, IsNotFound(errors.Join(errors.New("wrapped"), &APIError{StatusCode: 404})))
	assert.False(t, IsNotFound(&APIError{StatusCode: 410}))
	assert.False(t, IsNotFound(errors.New("404 not found")))
	assert.False(t, IsNotFound(nil))
}
