package config

import (
	"os"
	"strings"

	"github.com/dmitrijs2005/anagrafe/internal/client/dialect"
)

// Environment variables read by parseEnv.
const (
	EnvBaseURL = "ANAGRAFE_API_BASE"
	EnvDialect = "ANAGRAFE_API_DTO"
)

func parseEnv(cfg *Config) error {
	if v := strings.TrimSpace(os.Getenv(EnvBaseURL)); v != "" {
		cfg.BaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvDialect)); v != "" {
		d, err := dialect.Parse(v)
		if err != nil {
			return err
		}
		cfg.Dialect = d
	}
	return nil
}
