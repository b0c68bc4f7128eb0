// Package persons stores the development backend's Person records.
package persons

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/anagrafe/internal/client/models"
)

var (
	ErrNotFound      = errors.New("person not found")
	ErrAlreadyExists = errors.New("person already exists")
)

// Filter narrows List. Empty fields match everything; Limit <= 0 means no
// limit.
type Filter struct {
	Surname  string
	Province string
	Limit    int
}

// Repository is the storage contract used by the HTTP handlers. Records are
// keyed by canonical tax code.
type Repository interface {
	Get(ctx context.Context, id string) (models.Person, error)
	List(ctx context.Context, f Filter) ([]models.Person, error)
	Create(ctx context.Context, p models.Person) error
	Update(ctx context.Context, p models.Person) error
	Delete(ctx context.Context, id string) error
}
