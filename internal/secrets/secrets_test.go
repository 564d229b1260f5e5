// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package secrets

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a10y/papers-list/pkg/types"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T) string
		want  map[string]string
	}{
		{
			name: "reads key files and trims whitespace",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, ZoteroUserID, "  12345  \n")
				writeFile(t, dir, ZoteroAPIKey, "zk_abc123")
				writeFile(t, dir, ZoteroCollectionID, "COLL1\n")
				return dir
			},
			want: map[string]string{
				ZoteroUserID:       "12345",
				ZoteroAPIKey:       "zk_abc123",
				ZoteroCollectionID: "COLL1",
			},
		},
		{
			name: "returns empty map for nonexistent directory",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "does-not-exist")
			},
			want: map[string]string{},
		},
		{
			name: "skips empty files",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, ZoteroAPIKey, "valid-key")
				writeFile(t, dir, ZoteroUserID, "")
				writeFile(t, dir, ZoteroCollectionID, "   \n\t  ")
				return dir
			},
			want: map[string]string{ZoteroAPIKey: "valid-key"},
		},
		{
			name: "skips dotfiles and subdirectories",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, ".gitkeep", "")
				writeFile(t, dir, ".hidden-key", "secret")
				writeFile(t, dir, ZoteroAPIKey, "zk_real")
				require.NoError(t, os.Mkdir(filepath.Join(dir, "subdir"), 0o755))
				return dir
			},
			want: map[string]string{ZoteroAPIKey: "zk_real"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Load(tt.setup(t), zerolog.Nop())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadUnreadableFile(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("file permissions are not enforced for root")
	}
	dir := t.TempDir()
	writeFile(t, dir, ZoteroAPIKey, "value123")

	badPath := filepath.Join(dir, ZoteroUserID)
	require.NoError(t, os.WriteFile(badPath, []byte("12345"), 0o000))
	t.Cleanup(func() { os.Chmod(badPath, 0o644) })

	var logs bytes.Buffer
	got, err := Load(dir, zerolog.New(&logs))
	require.NoError(t, err)
	assert.Equal(t, "value123", got[ZoteroAPIKey])
	assert.NotContains(t, got, ZoteroUserID)
	assert.Contains(t, logs.String(), "could not read secret")
}

func TestApplyZotero(t *testing.T) {
	secrets := map[string]string{
		ZoteroUserID:       "12345",
		ZoteroAPIKey:       "from-file",
		ZoteroCollectionID: "COLL1",
	}
	cfg := types.ZoteroConfig{APIKey: "from-env"}

	ApplyZotero(&cfg, secrets)

	assert.Equal(t, "12345", cfg.UserID)
	assert.Equal(t, "from-env", cfg.APIKey, "configured value wins")
	assert.Equal(t, "COLL1", cfg.CollectionID)
	assert.NoError(t, cfg.Validate())
}

func TestApplyZoteroMissing(t *testing.T) {
	var cfg types.ZoteroConfig
	ApplyZotero(&cfg, map[string]string{})

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "user id")
	assert.Contains(t, err.Error(), "API key")
	assert.Contains(t, err.Error(), "collection id")
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}
