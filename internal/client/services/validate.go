package services

import (
	"strings"

	"github.com/dmitrijs2005/anagrafe/internal/client/client"
	"github.com/dmitrijs2005/anagrafe/internal/client/dialect"
	"github.com/dmitrijs2005/anagrafe/internal/client/models"
	"github.com/dmitrijs2005/anagrafe/internal/client/taxcode"
)

// Field names reported by ValidationError.
const (
	FieldTaxCode     = "taxCode"
	FieldFirstName   = "firstName"
	FieldLastName    = "lastName"
	FieldStreet      = "street"
	FieldHouseNumber = "houseNumber"
	FieldCity        = "city"
	FieldProvince    = "province"
	FieldCountry     = "country"
)

// Reasons used besides the tax code ones.
const (
	ReasonRequired = string(taxcode.ReasonRequired)
	ReasonInteger  = "integer"
)

// ValidateForSave checks a person before it is sent to the backend. The
// first offending field is reported as a *client.ValidationError.
func ValidateForSave(p models.Person) error {
	if res := taxcode.Validate(p.TaxCode); !res.Valid {
		return &client.ValidationError{Field: FieldTaxCode, Reason: string(res.Reason)}
	}

	required := []struct {
		field, value string
	}{
		{FieldFirstName, p.FirstName},
		{FieldLastName, p.LastName},
		{FieldStreet, p.Address.Street},
		{FieldHouseNumber, p.Address.HouseNumber},
		{FieldCity, p.Address.City},
		{FieldProvince, p.Address.Province},
		{FieldCountry, p.Address.Country},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return &client.ValidationError{Field: r.field, Reason: ReasonRequired}
		}
	}

	if n, ok := dialect.ParseHouseNumber(p.Address.HouseNumber); !ok || n < 1 {
		return &client.ValidationError{Field: FieldHouseNumber, Reason: ReasonInteger}
	}
	return nil
}

func requireID(id string) (string, error) {
	id = taxcode.Canonicalize(id)
	if id == "" {
		return "", &client.ValidationError{Field: FieldTaxCode, Reason: ReasonRequired}
	}
	return id, nil
}
