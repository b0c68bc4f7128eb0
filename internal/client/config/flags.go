package config

import (
	"flag"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/anagrafe/internal/client/dialect"
	"github.com/dmitrijs2005/anagrafe/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
//	-a string   backend base URL
//	-d string   payload dialect (it, en)
//	-t int      request timeout in seconds
//	-l string   log level
//
// Only the flags listed above are taken from os.Args; see flagx.FilterArgs.
func parseFlags(cfg *Config) error {
	args := flagx.FilterArgs(os.Args[1:], "a", "d", "t", "l")

	fs := flag.NewFlagSet("anagrafe", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.BaseURL, "a", cfg.BaseURL, "backend base URL")
	d := fs.String("d", string(cfg.Dialect), "payload dialect (it, en)")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	parsed, err := dialect.Parse(*d)
	if err != nil {
		return err
	}
	cfg.Dialect = parsed
	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
	return nil
}
