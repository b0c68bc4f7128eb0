package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/anagrafe/internal/client/dialect"
	"github.com/dmitrijs2005/anagrafe/internal/flagx"
	"github.com/dmitrijs2005/anagrafe/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Intervals are
// timex.Duration so they may be written as "15s" or as integer nanoseconds.
// Zero values leave the corresponding setting untouched.
type JsonConfig struct {
	BaseURL            string         `json:"base_url"`
	Dialect            string         `json:"dialect"`
	RequestTimeout     timex.Duration `json:"request_timeout"`
	CacheTTL           timex.Duration `json:"cache_ttl"`
	CacheSweepInterval timex.Duration `json:"cache_sweep_interval"`
	SearchPageSize     int            `json:"search_page_size"`
	LogLevel           string         `json:"log_level"`
}

// parseJson overlays cfg with the file named by -c / -config, if any.
func parseJson(cfg *Config) error {
	path := flagx.ConfigPath(os.Args[1:])
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return err
	}

	if jc.BaseURL != "" {
		cfg.BaseURL = jc.BaseURL
	}
	if jc.Dialect != "" {
		d, err := dialect.Parse(jc.Dialect)
		if err != nil {
			return err
		}
		cfg.Dialect = d
	}
	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.CacheTTL.Duration > 0 {
		cfg.CacheTTL = jc.CacheTTL.Duration
	}
	if jc.CacheSweepInterval.Duration > 0 {
		cfg.CacheSweepInterval = jc.CacheSweepInterval.Duration
	}
	if jc.SearchPageSize > 0 {
		cfg.SearchPageSize = jc.SearchPageSize
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
	return nil
}
