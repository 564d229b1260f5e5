package types

import (
	"errors"
	"time"
)

// HTTPConfig holds settings for outbound requests to the reference manager.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "papers-list/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// ZoteroConfig holds the credentials and scope for the upstream library.
// UserID, APIKey and CollectionID are secrets.
type ZoteroConfig struct {
	// UserID is the numeric library owner placed in every request path.
	UserID string `json:"user_id" yaml:"user_id" mapstructure:"user_id"`

	// APIKey is sent in the Zotero-API-Key header.
	APIKey string `json:"-" yaml:"-" mapstructure:"api_key"`

	// CollectionID selects the collection listed by /api/papers.
	CollectionID string `json:"collection_id" yaml:"collection_id" mapstructure:"collection_id"`

	// BaseURL overrides the API root (default https://api.zotero.org).
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty" mapstructure:"base_url"`

	// RateLimit caps upstream requests per second. Zero disables the limiter.
	RateLimit float64 `json:"rate_limit" yaml:"rate_limit" mapstructure:"rate_limit"`
}

// Validate reports which required credentials are missing.
func (c ZoteroConfig) Validate() error {
	var errs []error
	if c.UserID == "" {
		errs = append(errs, errors.New("zotero user id is required"))
	}
	if c.APIKey == "" {
		errs = append(errs, errors.New("zotero API key is required"))
	}
	if c.CollectionID == "" {
		errs = append(errs, errors.New("zotero collection id is required"))
	}
	return errors.Join(errs...)
}

// CacheConfig holds settings for the cache-or-fetch layer.
type CacheConfig struct {
	// TTL is how long a cached value is served before refetching (default 60s).
	TTL time.Duration `json:"ttl" yaml:"ttl" mapstructure:"ttl"`
}

// StoreBackend identifies the key-value store implementation.
type StoreBackend string

const (
	StoreMemory StoreBackend = "memory"
	StoreRedis  StoreBackend = "redis"
	StoreSQLite StoreBackend = "sqlite"
)

// StoreConfig selects and configures the key-value store.
type StoreConfig struct {
	// Backend selects the store: memory, redis, or sqlite.
	Backend StoreBackend `json:"backend" yaml:"backend" mapstructure:"backend"`

	// RedisURL is the connection URL for the redis backend.
	RedisURL string `json:"redis_url,omitempty" yaml:"redis_url,omitempty" mapstructure:"redis_url"`

	// SQLitePath is the database file for the sqlite backend.
	SQLitePath string `json:"sqlite_path,omitempty" yaml:"sqlite_path,omitempty" mapstructure:"sqlite_path"`
}

// ServerConfig holds settings for the HTTP API.
type ServerConfig struct {
	// Addr is the listen address (default ":8787").
	Addr string `json:"addr" yaml:"addr" mapstructure:"addr"`

	// FrontendDir holds the built single-page app. Empty disables static serving.
	FrontendDir string `json:"frontend_dir" yaml:"frontend_dir" mapstructure:"frontend_dir"`

	// AllowedOrigins is a comma-separated CORS origin list.
	AllowedOrigins string `json:"allowed_origins" yaml:"allowed_origins" mapstructure:"allowed_origins"`

	// Metrics exposes prometheus metrics at /metrics.
	Metrics bool `json:"metrics" yaml:"metrics" mapstructure:"metrics"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// Format is json or console.
	Format string `json:"format" yaml:"format" mapstructure:"format"`
}

// Config groups all settings for the service.
type Config struct {
	Zotero ZoteroConfig `json:"zotero" yaml:"zotero" mapstructure:"zotero"`
	HTTP   HTTPConfig   `json:"http" yaml:"http" mapstructure:"http"`
	Cache  CacheConfig  `json:"cache" yaml:"cache" mapstructure:"cache"`
	Store  StoreConfig  `json:"store" yaml:"store" mapstructure:"store"`
	Server ServerConfig `json:"server" yaml:"server" mapstructure:"server"`
	Log    LogConfig    `json:"log" yaml:"log" mapstructure:"log"`
}

// Validate checks the settings needed to reach the upstream library.
func (c Config) Validate() error {
	return c.Zotero.Validate()
}
