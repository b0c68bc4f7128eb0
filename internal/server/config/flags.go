package config

import (
	"flag"
	"fmt"
	"os"

	"github.com/dmitrijs2005/anagrafe/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-x string   path prefix (e.g., "/api")
//	-d string   payload dialect (it, en)
//	-p bool     paged list responses
//	-m string   search endpoint mode (ok, 404, 405, 501)
//	-i bool     ignore search filters
//	-s bool     seed sample records
//
// Invalid values panic.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], "a", "x", "d", "p", "m", "i", "s")

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddr, "a", config.EndpointAddr, "address and port to run server")
	fs.StringVar(&config.Prefix, "x", config.Prefix, "path prefix")
	fs.StringVar(&config.Dialect, "d", config.Dialect, "payload dialect (it, en)")
	fs.BoolVar(&config.Paged, "p", config.Paged, "wrap lists in paged envelopes")
	fs.StringVar(&config.SearchMode, "m", config.SearchMode, "search endpoint mode (ok, 404, 405, 501)")
	fs.BoolVar(&config.IgnoreFilters, "i", config.IgnoreFilters, "ignore search filters")
	fs.BoolVar(&config.Seed, "s", config.Seed, "seed sample records")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	switch config.SearchMode {
	case SearchOK, SearchNotFound, SearchNotAllowed, SearchNotImplemented:
	default:
		panic(fmt.Sprintf("unknown search mode %q", config.SearchMode))
	}
}
