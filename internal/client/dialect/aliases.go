package dialect

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed aliases.yaml
var aliasesYAML []byte

type fieldAliases struct {
	TaxCode     []string `yaml:"taxCode"`
	FirstName   []string `yaml:"firstName"`
	LastName    []string `yaml:"lastName"`
	Address     []string `yaml:"address"`
	Street      []string `yaml:"street"`
	HouseNumber []string `yaml:"houseNumber"`
	City        []string `yaml:"city"`
	Province    []string `yaml:"province"`
	Country     []string `yaml:"country"`
}

type fieldKeys struct {
	TaxCode     string `yaml:"taxCode"`
	FirstName   string `yaml:"firstName"`
	LastName    string `yaml:"lastName"`
	Address     string `yaml:"address"`
	Street      string `yaml:"street"`
	HouseNumber string `yaml:"houseNumber"`
	City        string `yaml:"city"`
	Province    string `yaml:"province"`
	Country     string `yaml:"country"`
}

type tables struct {
	Inbound      fieldAliases          `yaml:"inbound"`
	Outbound     map[Dialect]fieldKeys `yaml:"outbound"`
	SearchParams struct {
		Surname  []string `yaml:"surname"`
		Province []string `yaml:"province"`
		Size     string   `yaml:"size"`
	} `yaml:"searchParams"`
	SearchRow struct {
		LastName []string `yaml:"lastName"`
		Province []string `yaml:"province"`
	} `yaml:"searchRow"`
}

var aliases = mustLoad(aliasesYAML)

func mustLoad(data []byte) *tables {
	t, err := load(data)
	if err != nil {
		panic(fmt.Sprintf("dialect: %v", err))
	}
	return t
}

func load(data []byte) (*tables, error) {
	var t tables
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parse alias tables: %w", err)
	}

	in := map[string][]string{
		"taxCode": t.Inbound.TaxCode, "firstName": t.Inbound.FirstName, "lastName": t.Inbound.LastName,
		"address": t.Inbound.Address, "street": t.Inbound.Street, "houseNumber": t.Inbound.HouseNumber,
		"city": t.Inbound.City, "province": t.Inbound.Province, "country": t.Inbound.Country,
	}
	for field, list := range in {
		if len(list) == 0 {
			return nil, fmt.Errorf("inbound field %q has no aliases", field)
		}
	}

	for _, d := range Dialects {
		k, ok := t.Outbound[d]
		if !ok {
			return nil, fmt.Errorf("outbound dialect %q is not defined", d)
		}
		for field, key := range map[string]string{
			"taxCode": k.TaxCode, "firstName": k.FirstName, "lastName": k.LastName,
			"address": k.Address, "street": k.Street, "houseNumber": k.HouseNumber,
			"city": k.City, "province": k.Province, "country": k.Country,
		} {
			if key == "" {
				return nil, fmt.Errorf("outbound dialect %q has no key for %q", d, field)
			}
		}
	}

	if len(t.SearchParams.Surname) == 0 || len(t.SearchParams.Province) == 0 || t.SearchParams.Size == "" {
		return nil, fmt.Errorf("search parameter aliases are incomplete")
	}
	if len(t.SearchRow.LastName) == 0 || len(t.SearchRow.Province) == 0 {
		return nil, fmt.Errorf("search row candidates are incomplete")
	}
	return &t, nil
}

// SurnameParams returns the query parameter names a surname fragment is sent under.
func SurnameParams() []string { return clone(aliases.SearchParams.Surname) }

// ProvinceParams returns the query parameter names a province code is sent under.
func ProvinceParams() []string { return clone(aliases.SearchParams.Province) }

// SizeParam returns the query parameter name for the page size.
func SizeParam() string { return aliases.SearchParams.Size }

func clone(s []string) []string {
	return append([]string(nil), s...)
}
