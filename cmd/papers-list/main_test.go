package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a10y/papers-list/pkg/types"
)

func TestLoadConfigDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	c, err := loadConfig(v)
	require.NoError(t, err)

	assert.Equal(t, "https://api.zotero.org", c.Zotero.BaseURL)
	assert.Equal(t, 60*time.Second, c.Cache.TTL)
	assert.Equal(t, 30*time.Second, c.HTTP.Timeout)
	assert.Equal(t, types.StoreMemory, c.Store.Backend)
	assert.Equal(t, ":8787", c.Server.Addr)
	assert.True(t, c.Server.Metrics)
	assert.Equal(t, "info", c.Log.Level)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("PAPERS_LIST_ZOTERO_USER_ID", "12345")
	t.Setenv("PAPERS_LIST_ZOTERO_API_KEY", "env-key")
	t.Setenv("PAPERS_LIST_ZOTERO_COLLECTION_ID", "COLL1")
	t.Setenv("PAPERS_LIST_CACHE_TTL", "5m")
	t.Setenv("PAPERS_LIST_STORE_BACKEND", "sqlite")
	t.Setenv("PAPERS_LIST_ZOTERO_RATE_LIMIT", "2.5")

	v := viper.New()
	setDefaults(v)

	c, err := loadConfig(v)
	require.NoError(t, err)

	assert.Equal(t, "12345", c.Zotero.UserID)
	assert.Equal(t, "env-key", c.Zotero.APIKey)
	assert.Equal(t, "COLL1", c.Zotero.CollectionID)
	assert.Equal(t, 5*time.Minute, c.Cache.TTL)
	assert.Equal(t, types.StoreSQLite, c.Store.Backend)
	assert.Equal(t, 2.5, c.Zotero.RateLimit)
	assert.NoError(t, c.Validate())
}

func TestWriteOutput(t *testing.T) {
	doi := "10.1234/test.2024"
	detail := types.PaperDetail{
		Paper: types.Paper{
			ID:       "ABC123",
			Title:    "Test Paper Title",
			Authors:  []string{"John Doe"},
			DOI:      &doi,
			ItemType: "journalArticle",
		},
		Notes: []types.Note{},
		Tags:  []string{"research"},
	}

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeOutput(&buf, "json", detail))
		assert.Contains(t, buf.String(), `"id": "ABC123"`)
		assert.Contains(t, buf.String(), `"itemType": "journalArticle"`)
		assert.Contains(t, buf.String(), `"url": null`)
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeOutput(&buf, "yaml", detail))
		out := buf.String()
		assert.Contains(t, out, "id: ABC123\n")
		assert.Contains(t, out, "item_type: journalArticle\n")
		assert.Contains(t, out, "doi: 10.1234/test.2024\n")
		assert.Contains(t, out, "tags:\n  - research\n")
	})

	t.Run("unknown", func(t *testing.T) {
		err := writeOutput(&bytes.Buffer{}, "xml", detail)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `unknown format "xml"`)
	})
}
