package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/dmitrijs2005/anagrafe/internal/client/dialect"
	"github.com/dmitrijs2005/anagrafe/internal/client/models"
)

// Config holds runtime settings for the anagrafe CLI.
//
// Fields:
//   - BaseURL: backend root, including any path prefix (e.g. "http://host/api").
//   - Dialect: payload dialect written to the backend.
//   - RequestTimeout: per-request HTTP timeout.
//   - CacheTTL: freshness window of the read cache.
//   - CacheSweepInterval: how often expired cache entries are pruned.
//   - SearchPageSize: rows requested when a search names no size.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	BaseURL            string
	Dialect            dialect.Dialect
	RequestTimeout     time.Duration
	CacheTTL           time.Duration
	CacheSweepInterval time.Duration
	SearchPageSize     int
	LogLevel           string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = "http://127.0.0.1:8080"
	c.Dialect = dialect.Default
	c.RequestTimeout = 15 * time.Second
	c.CacheTTL = 60 * time.Second
	c.CacheSweepInterval = 5 * time.Minute
	c.SearchPageSize = models.DefaultPageSize
	c.LogLevel = "info"
}

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid base url %q", c.BaseURL)
	}
	if _, err := dialect.Parse(string(c.Dialect)); err != nil {
		return err
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got %s", c.RequestTimeout)
	}
	if c.CacheTTL <= 0 {
		return fmt.Errorf("cache ttl must be positive, got %s", c.CacheTTL)
	}
	if c.SearchPageSize <= 0 {
		return fmt.Errorf("search page size must be positive, got %d", c.SearchPageSize)
	}
	return nil
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment and command-line flags. Later sources
// take precedence over earlier ones.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg); err != nil {
		return nil, fmt.Errorf("config file: %w", err)
	}
	if err := parseEnv(cfg); err != nil {
		return nil, fmt.Errorf("environment: %w", err)
	}
	if err := parseFlags(cfg); err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
