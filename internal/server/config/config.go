// Package config handles configuration for the development backend,
// including defaults, JSON overlay, and command-line flags.
package config

import "time"

// Search endpoint behaviours.
const (
	SearchOK             = "ok"
	SearchNotFound       = "404"
	SearchNotAllowed     = "405"
	SearchNotImplemented = "501"
)

// Config holds runtime settings for the development backend.
//
// Fields:
//   - EndpointAddr: bind address of the HTTP endpoint.
//   - Prefix: path prefix mounted in front of /persons (e.g. "/api").
//   - Dialect: key convention of the payloads the backend writes.
//   - Paged: wrap list responses in {"content": [...]} envelopes.
//   - SearchMode: how /persons/search answers (ok, 404, 405, 501).
//   - IgnoreFilters: return every record regardless of query parameters.
//   - Seed: preload a handful of sample records.
//   - ShutdownTimeout: grace period for in-flight requests on shutdown.
type Config struct {
	EndpointAddr    string
	Prefix          string
	Dialect         string
	Paged           bool
	SearchMode      string
	IgnoreFilters   bool
	Seed            bool
	ShutdownTimeout time.Duration
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.EndpointAddr = ":8080"
	c.Prefix = ""
	c.Dialect = "it"
	c.Paged = false
	c.SearchMode = SearchOK
	c.IgnoreFilters = false
	c.Seed = true
	c.ShutdownTimeout = 5 * time.Second
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
