package persons

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/anagrafe/internal/client/models"
)

// SampleData is a small fixture set covering both row address shapes and
// several surnames sharing a prefix.
func SampleData() []models.Person {
	return []models.Person{
		{
			TaxCode: "RSSMRA80A01H501U", FirstName: "Mario", LastName: "Rossi",
			Address: models.Address{Street: "Via Roma", HouseNumber: "12", City: "Roma", Province: "RM", Country: "Italia"},
		},
		{
			TaxCode: "BNCGVN85T10F205G", FirstName: "Giovanni", LastName: "Bianchi",
			Address: models.Address{Street: "Corso Buenos Aires", HouseNumber: "3", City: "Milano", Province: "MI", Country: "Italia"},
		},
		{
			TaxCode: "RSSTTR75C12H501L", FirstName: "Ettore", LastName: "Rossetti",
			Address: models.Address{Street: "Via Appia", HouseNumber: "40", City: "Roma", Province: "RM", Country: "Italia"},
		},
		{
			TaxCode: "RSSLGU90E15L219K", FirstName: "Luigi", LastName: "Rossini",
			Address: models.Address{Street: "Via Po", HouseNumber: "7", City: "Torino", Province: "TO", Country: "Italia"},
		},
		{
			TaxCode: "VRDGPP70M41A944B", FirstName: "Giuseppina", LastName: "Verdi",
			Address: models.Address{Street: "Via Indipendenza", HouseNumber: "21", City: "Bologna", Province: "BO", Country: "Italia"},
		},
	}
}

// Seed inserts SampleData, skipping records that already exist.
func Seed(ctx context.Context, repo Repository) error {
	for _, p := range SampleData() {
		if err := repo.Create(ctx, p); err != nil && !errors.Is(err, ErrAlreadyExists) {
			return err
		}
	}
	return nil
}
