package cli

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/dmitrijs2005/anagrafe/internal/client/client"
	"github.com/dmitrijs2005/anagrafe/internal/client/services"
	"github.com/stretchr/testify/assert"
)

func TestDescribe(t *testing.T) {
	const fallback = "fallback"
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"cancelled", fmt.Errorf("%w: %w", client.ErrCancelled, context.Canceled), ""},
		{"cf required", &client.ValidationError{Field: services.FieldTaxCode, Reason: "required"}, "Inserisci il CF."},
		{"cf length", &client.ValidationError{Field: services.FieldTaxCode, Reason: "length"}, "Il Codice Fiscale deve essere di 16 caratteri."},
		{"house number", &client.ValidationError{Field: services.FieldHouseNumber, Reason: services.ReasonInteger}, "Numero Civico non valido."},
		{"unknown field", &client.ValidationError{Field: "x", Reason: "y"}, fallback},
		{"not found", fmt.Errorf("get X: %w", client.ErrNotFound), msgNotFound},
		{"backend message", &client.TransportError{StatusCode: 409, Message: "CF già presente"}, "CF già presente"},
		{"bare status", fmt.Errorf("search: %w", &client.TransportError{StatusCode: 500}), "Errore 500"},
		{"network", &client.TransportError{Err: errors.New("dial tcp: connection refused")}, "Errore di rete"},
		{"other", errors.New("something internal"), fallback},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, describe(tt.err, fallback))
		})
	}
}
