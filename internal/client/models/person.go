// Package models defines the canonical, dialect-independent shapes handed to
// UI code: Person, Address, SearchRow and search Criteria.
package models

import "strings"

// Person is the canonical person record. TaxCode is the natural key: it is
// supplied at creation and never changed by an update.
type Person struct {
	TaxCode   string
	FirstName string
	LastName  string
	Address   Address
}

// Address is the canonical postal address. HouseNumber stays a string so a
// half-edited form can hold "" or "12a"; only integers >= 1 are persisted.
type Address struct {
	Street      string
	HouseNumber string
	City        string
	Province    string
	Country     string
}

// SearchRow is the reduced projection used for browse lists.
type SearchRow struct {
	TaxCode   string
	FirstName string
	LastName  string
	Address   RowAddress
	Province  string
}

// RowAddress holds whatever the backend sent for a row address: either an
// opaque display string or a structured address.
type RowAddress struct {
	Text       string
	Structured bool
	Parts      Address
}

// Format renders the address for a single list line:
// "street number, city province", or the opaque text. Empty yields "—".
func (a RowAddress) Format() string {
	if !a.Structured {
		if s := strings.TrimSpace(a.Text); s != "" {
			return s
		}
		return "—"
	}

	line1 := joinNonEmpty(a.Parts.Street, a.Parts.HouseNumber)
	line2 := joinNonEmpty(a.Parts.City, a.Parts.Province)

	parts := make([]string, 0, 2)
	if line1 != "" {
		parts = append(parts, line1)
	}
	if line2 != "" {
		parts = append(parts, line2)
	}
	if len(parts) == 0 {
		return "—"
	}
	return strings.Join(parts, ", ")
}

func joinNonEmpty(values ...string) string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return strings.Join(out, " ")
}
