// Package dialect maps person payloads between the canonical models and the
// key conventions ("dialects") spoken by the various backends.
//
// Reading is lenient: every known alias of a field is probed in a fixed
// order, so payloads in Italian, English or snake_case keys (or a mix) all
// normalize to the same models.Person. Writing is strict: exactly one
// dialect is produced, selected by configuration.
//
// The alias tables live in aliases.yaml, embedded at build time and checked
// when the package is initialized.
package dialect

import (
	"fmt"
	"strings"
)

// Dialect selects the key convention used for outbound payloads.
type Dialect string

const (
	Italian Dialect = "it"
	English Dialect = "en"
)

// Default is the dialect used when none is configured.
const Default = Italian

// Dialects lists every supported dialect.
var Dialects = []Dialect{Italian, English}

// Parse maps a configuration value to a Dialect. Matching is
// case-insensitive; an empty value selects Default.
func Parse(s string) (Dialect, error) {
	switch Dialect(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return Default, nil
	case Italian:
		return Italian, nil
	case English:
		return English, nil
	}
	return "", fmt.Errorf("unknown dialect %q (want %q or %q)", s, Italian, English)
}

func (d Dialect) String() string { return string(d) }
