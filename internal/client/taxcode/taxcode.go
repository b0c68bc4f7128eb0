// Package taxcode canonicalizes and validates the person identifier, an
// Italian codice fiscale: 16 characters, 6 letters, 2 digits, 1 letter,
// 2 digits, 1 letter, 3 digits, 1 letter, the last one being a check
// character computed over the first fifteen.
package taxcode

import (
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Length is the fixed length of a valid identifier.
const Length = 16

var pattern = regexp.MustCompile(`^[A-Z]{6}[0-9]{2}[A-Z][0-9]{2}[A-Z][0-9]{3}[A-Z]$`)

// Reason names why an identifier was rejected.
type Reason string

const (
	ReasonNone     Reason = ""
	ReasonRequired Reason = "required"
	ReasonLength   Reason = "length"
	ReasonFormat   Reason = "format"
)

// Result is the outcome of Validate.
type Result struct {
	Valid  bool
	Reason Reason
}

// Canonicalize trims surrounding space and upper-cases raw.
func Canonicalize(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// Validate checks the canonical form of raw. Checks run in order
// required, length, format and the first failure is reported.
func Validate(raw string) Result {
	v := Canonicalize(raw)
	switch {
	case v == "":
		return Result{Reason: ReasonRequired}
	case utf8.RuneCountInString(v) != Length:
		return Result{Reason: ReasonLength}
	case !pattern.MatchString(v), checkChar(v[:Length-1]) != v[Length-1]:
		return Result{Reason: ReasonFormat}
	}
	return Result{Valid: true}
}

// oddValues maps the characters in odd (1-based) positions to their weight;
// index 0-9 are the digits, 10-35 the letters A-Z.
var oddValues = [36]int{
	1, 0, 5, 7, 9, 13, 15, 17, 19, 21,
	1, 0, 5, 7, 9, 13, 15, 17, 19, 21, 2, 4, 18, 20, 11, 3, 6, 8, 12, 14, 16, 10, 22, 25, 24, 23,
}

// checkChar computes the control character of the first 15 characters.
// The input must already match the structural pattern.
func checkChar(body string) byte {
	sum := 0
	for i := 0; i < len(body); i++ {
		c := body[i]
		idx, even := int(c-'A')+10, int(c-'A')
		if c >= '0' && c <= '9' {
			idx, even = int(c-'0'), int(c-'0')
		}
		if i%2 == 0 {
			sum += oddValues[idx]
		} else {
			sum += even
		}
	}
	return byte('A' + sum%26)
}

// PathSegment returns the canonical identifier escaped for a URL path.
func PathSegment(raw string) string {
	return url.PathEscape(Canonicalize(raw))
}
