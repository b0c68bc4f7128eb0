package dialect

import (
	"encoding/json"
	"math"
	"strconv"

	"github.com/dmitrijs2005/anagrafe/internal/client/models"
)

// ToCanonical normalizes a decoded JSON person payload. Anything that is not
// a JSON object (including nil) reads as an empty object. Absent fields come
// back as "".
func ToCanonical(raw any) models.Person {
	obj := asObject(raw)
	in := &aliases.Inbound

	return models.Person{
		TaxCode:   pick(obj, in.TaxCode),
		FirstName: pick(obj, in.FirstName),
		LastName:  pick(obj, in.LastName),
		Address:   toAddress(pickObject(obj, in.Address)),
	}
}

// ToSearchRow normalizes one list row. The address may be an opaque string
// or a structured object.
func ToSearchRow(raw map[string]any) models.SearchRow {
	in := &aliases.Inbound
	return models.SearchRow{
		TaxCode:   pick(raw, in.TaxCode),
		FirstName: pick(raw, in.FirstName),
		LastName:  pick(raw, in.LastName),
		Address:   rowAddress(raw),
		Province:  RowProvince(raw),
	}
}

func rowAddress(raw map[string]any) models.RowAddress {
	for _, k := range aliases.Inbound.Address {
		switch v := raw[k].(type) {
		case map[string]any:
			return models.RowAddress{Structured: true, Parts: toAddress(v)}
		case string:
			return models.RowAddress{Text: v}
		}
	}
	return models.RowAddress{}
}

// RowLastName reads a row's surname from the re-filter candidates.
func RowLastName(raw map[string]any) string {
	return pick(raw, aliases.SearchRow.LastName)
}

// RowProvince reads a row's province: row-level keys first, then the same
// keys inside a structured address.
func RowProvince(raw map[string]any) string {
	if p := pick(raw, aliases.SearchRow.Province); p != "" {
		return p
	}
	return pick(pickObject(raw, aliases.Inbound.Address), aliases.SearchRow.Province)
}

func toAddress(obj map[string]any) models.Address {
	in := &aliases.Inbound
	return models.Address{
		Street:      pick(obj, in.Street),
		HouseNumber: pick(obj, in.HouseNumber),
		City:        pick(obj, in.City),
		Province:    pick(obj, in.Province),
		Country:     pick(obj, in.Country),
	}
}

func asObject(raw any) map[string]any {
	if obj, ok := raw.(map[string]any); ok {
		return obj
	}
	return nil
}

// pick returns the first alias holding a scalar value. null, objects and
// arrays do not count as present.
func pick(obj map[string]any, keys []string) string {
	for _, k := range keys {
		if s, ok := scalar(obj[k]); ok {
			return s
		}
	}
	return ""
}

func pickObject(obj map[string]any, keys []string) map[string]any {
	for _, k := range keys {
		if sub, ok := obj[k].(map[string]any); ok {
			return sub
		}
	}
	return nil
}

func scalar(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case json.Number:
		return x.String(), true
	case float64:
		if x == math.Trunc(x) && math.Abs(x) < 1e15 {
			return strconv.FormatInt(int64(x), 10), true
		}
		return strconv.FormatFloat(x, 'f', -1, 64), true
	case int:
		return strconv.Itoa(x), true
	case int64:
		return strconv.FormatInt(x, 10), true
	case bool:
		return strconv.FormatBool(x), true
	}
	return "", false
}
