// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads Zotero credentials from a directory of plain-text
// files. The filename is the key name and the trimmed file contents are
// the value.
//
// Recognized key files: zotero-user-id, zotero-api-key, zotero-collection-id.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/a10y/papers-list/pkg/types"
)

// Key file names.
const (
	ZoteroUserID       = "zotero-user-id"
	ZoteroAPIKey       = "zotero-api-key"
	ZoteroCollectionID = "zotero-collection-id"
)

// Names lists the recognized key files.
var Names = []string{ZoteroUserID, ZoteroAPIKey, ZoteroCollectionID}

// Load reads all files in dir and returns a map of filename to trimmed
// contents. A missing directory is not an error; Load returns an empty map.
// Unreadable files are logged and skipped.
func Load(dir string, logger zerolog.Logger) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			logger.Warn().Err(err).Str("secret", name).Msg("could not read secret")
			continue
		}

		if value := strings.TrimSpace(string(data)); value != "" {
			secrets[name] = value
		}
	}
	return secrets, nil
}

// ApplyZotero fills the credential fields of cfg that are still empty from
// the loaded secrets. Values already set by flags, env or config win.
func ApplyZotero(cfg *types.ZoteroConfig, secrets map[string]string) {
	fill := func(dst *string, key string) {
		if *dst == "" {
			*dst = secrets[key]
		}
	}
	fill(&cfg.UserID, ZoteroUserID)
	fill(&cfg.APIKey, ZoteroAPIKey)
	fill(&cfg.CollectionID, ZoteroCollectionID)
}
