package cache

import "net/url"

// Key families.
const (
	FamilyPerson = "person"
	FamilySearch = "search"
)

// Key addresses one cache entry.
type Key struct {
	Family string
	ID     string
}

func (k Key) String() string { return k.Family + ":" + k.ID }

// PersonKey is the by-identifier key for a canonical tax code.
func PersonKey(id string) Key { return Key{Family: FamilyPerson, ID: id} }

// SearchKey keys a result list by the exact parameters its request carried.
// url.Values.Encode sorts by name, so equal parameter sets give equal keys.
func SearchKey(params url.Values) Key { return Key{Family: FamilySearch, ID: params.Encode()} }
