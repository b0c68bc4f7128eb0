package models

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultPageSize is the number of rows requested when Criteria.MaxResults is unset.
const DefaultPageSize = 20

// Criteria is what the UI asks a search for. Fields that do not meet their
// minimum shape are ignored rather than rejected.
type Criteria struct {
	SurnameFragment string
	ProvinceCode    string
	MaxResults      int
}

// EffectiveCriteria is the normalized subset of Criteria that is actually
// sent to the backend and re-applied locally. Empty strings mean "not used".
type EffectiveCriteria struct {
	Surname  string
	Province string
	Size     int
}

// Effective normalizes c: the surname is trimmed and kept only with at least
// two characters; the province is trimmed, upper-cased and kept only when it
// is exactly two letters. Size falls back to defaultSize (or DefaultPageSize).
func (c Criteria) Effective(defaultSize int) EffectiveCriteria {
	var e EffectiveCriteria

	if s := strings.TrimSpace(c.SurnameFragment); utf8.RuneCountInString(s) >= 2 {
		e.Surname = s
	}
	if p := strings.ToUpper(strings.TrimSpace(c.ProvinceCode)); isProvinceCode(p) {
		e.Province = p
	}

	switch {
	case c.MaxResults > 0:
		e.Size = c.MaxResults
	case defaultSize > 0:
		e.Size = defaultSize
	default:
		e.Size = DefaultPageSize
	}
	return e
}

// IsZero reports whether no filter criterion is in effect.
func (e EffectiveCriteria) IsZero() bool {
	return e.Surname == "" && e.Province == ""
}

func isProvinceCode(s string) bool {
	if utf8.RuneCountInString(s) != 2 {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// NormalizeProvinceInput keeps letters only, upper-cases them and truncates
// to two characters. It is meant for interactive input fields.
func NormalizeProvinceInput(s string) string {
	var b strings.Builder
	n := 0
	for _, r := range s {
		if !unicode.IsLetter(r) {
			continue
		}
		b.WriteRune(unicode.ToUpper(r))
		n++
		if n == 2 {
			break
		}
	}
	return b.String()
}
