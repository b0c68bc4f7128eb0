package dialect

import (
	"strconv"
	"strings"

	"github.com/dmitrijs2005/anagrafe/internal/client/models"
)

// FromCanonical renders p as a payload in dialect d. An unknown dialect
// renders as Default.
//
// The house number is sent as a JSON integer only when it parses as a
// base-10 integer; otherwise the key is left out entirely. Empty address
// strings are sent as null.
func FromCanonical(p models.Person, d Dialect) map[string]any {
	k, ok := aliases.Outbound[d]
	if !ok {
		k = aliases.Outbound[Default]
	}

	addr := map[string]any{
		k.Street:   nullIfEmpty(p.Address.Street),
		k.City:     nullIfEmpty(p.Address.City),
		k.Province: nullIfEmpty(p.Address.Province),
		k.Country:  nullIfEmpty(p.Address.Country),
	}
	if n, ok := ParseHouseNumber(p.Address.HouseNumber); ok {
		addr[k.HouseNumber] = n
	}

	return map[string]any{
		k.TaxCode:   p.TaxCode,
		k.FirstName: p.FirstName,
		k.LastName:  p.LastName,
		k.Address:   addr,
	}
}

// ParseHouseNumber parses a canonical house number strictly: "12" is 12,
// while "", "12a" and "1.5" do not parse.
func ParseHouseNumber(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
