// Package config loads runtime configuration for the anagrafe CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. Environment: ANAGRAFE_API_BASE (base URL), ANAGRAFE_API_DTO (dialect).
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   backend base URL
//	-d string   payload dialect (it, en)
//	-t int      request timeout (seconds)
//	-l string   log level
//
// # JSON schema
//
// Intervals use timex.Duration, so values can be strings like "15s" or
// integer nanoseconds:
//
//	{
//	  "base_url": "http://127.0.0.1:8080/api",
//	  "dialect": "it",
//	  "request_timeout": "15s",
//	  "cache_ttl": "1m",
//	  "cache_sweep_interval": "5m",
//	  "search_page_size": 20,
//	  "log_level": "info"
//	}
package config
