package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/anagrafe/internal/flagx"
	"github.com/dmitrijs2005/anagrafe/internal/timex"
)

// JsonConfig is the JSON shape of Config. Pointer fields distinguish "absent"
// from an explicit false.
type JsonConfig struct {
	EndpointAddr    string         `json:"endpoint_addr"`
	Prefix          string         `json:"prefix"`
	Dialect         string         `json:"dialect"`
	Paged           *bool          `json:"paged"`
	SearchMode      string         `json:"search_mode"`
	IgnoreFilters   *bool          `json:"ignore_filters"`
	Seed            *bool          `json:"seed"`
	ShutdownTimeout timex.Duration `json:"shutdown_timeout"`
}

// parseJson loads the file named by -c / -config into config. Read or
// decode failures panic.
func parseJson(config *Config) {
	jsonConfigFile := flagx.ConfigPath(os.Args[1:])
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.EndpointAddr != "" {
		config.EndpointAddr = c.EndpointAddr
	}
	if c.Prefix != "" {
		config.Prefix = c.Prefix
	}
	if c.Dialect != "" {
		config.Dialect = c.Dialect
	}
	if c.Paged != nil {
		config.Paged = *c.Paged
	}
	if c.SearchMode != "" {
		config.SearchMode = c.SearchMode
	}
	if c.IgnoreFilters != nil {
		config.IgnoreFilters = *c.IgnoreFilters
	}
	if c.Seed != nil {
		config.Seed = *c.Seed
	}
	if c.ShutdownTimeout.Duration > 0 {
		config.ShutdownTimeout = c.ShutdownTimeout.Duration
	}
}
