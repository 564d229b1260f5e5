// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the papers-list CLI. The serve
// subcommand runs the HTTP API; papers list and papers get read through
// the same cache from the terminal.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/a10y/papers-list/internal/logging"
	"github.com/a10y/papers-list/internal/secrets"
	"github.com/a10y/papers-list/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// Resolved at startup by PersistentPreRunE.
var (
	cfg    types.Config
	logger zerolog.Logger
)

// rootCmd is the base command for the papers-list CLI.
var rootCmd = &cobra.Command{
	Use:   "papers-list",
	Short: "Read-only proxy for a Zotero paper collection",
	Long: `papers-list serves the papers of one Zotero collection as a small JSON API
and a single-page front end. Upstream responses are cached in a key-value
store (memory, redis, or sqlite) for a fixed time-to-live.

Credentials come from flags, PAPERS_LIST_* environment variables, a
papers-list.yaml config file, or files in .secrets/.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadConfig(viper.GetViper())
		if err != nil {
			return err
		}
		logger = logging.New(c.Log.Level, c.Log.Format, os.Stderr)

		dir, _ := cmd.Flags().GetString("secrets-dir")
		s, err := secrets.Load(dir, logger)
		if err != nil {
			return err
		}
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			logger.Debug().Strs("keys", keys).Msg("loaded secrets")
		}
		secrets.ApplyZotero(&c.Zotero, s)

		cfg = c
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./papers-list.yaml or ~/.config/papers-list/papers-list.yaml)")
	pf.String("secrets-dir", ".secrets/", "directory of credential files")
	pf.String("store", "", "key-value store backend: memory, redis, or sqlite")
	pf.Duration("ttl", 0, "cache time-to-live (default 60s)")
	pf.String("log-level", "", "log level: debug, info, warn, error")

	viper.BindPFlag("store.backend", pf.Lookup("store"))
	viper.BindPFlag("cache.ttl", pf.Lookup("ttl"))
	viper.BindPFlag("log.level", pf.Lookup("log-level"))
}

func initConfig() {
	// A missing .env is fine; real environment variables still apply.
	_ = godotenv.Load()

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("papers-list")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "papers-list"))
		}
	}

	setDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// setDefaults registers every config key so AutomaticEnv can resolve it
// during Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetEnvPrefix("PAPERS_LIST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("zotero.user_id", "")
	v.SetDefault("zotero.api_key", "")
	v.SetDefault("zotero.collection_id", "")
	v.SetDefault("zotero.base_url", "https://api.zotero.org")
	v.SetDefault("zotero.rate_limit", 0)
	v.SetDefault("http.timeout", "30s")
	v.SetDefault("http.user_agent", "papers-list/"+version)
	v.SetDefault("cache.ttl", "60s")
	v.SetDefault("store.backend", string(types.StoreMemory))
	v.SetDefault("store.redis_url", "")
	v.SetDefault("store.sqlite_path", "papers-list.db")
	v.SetDefault("server.addr", ":8787")
	v.SetDefault("server.frontend_dir", "")
	v.SetDefault("server.allowed_origins", "*")
	v.SetDefault("server.metrics", true)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

// loadConfig decodes v into a Config.
func loadConfig(v *viper.Viper) (types.Config, error) {
	var c types.Config
	if err := v.Unmarshal(&c); err != nil {
		return c, fmt.Errorf("decoding config: %w", err)
	}
	return c, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
