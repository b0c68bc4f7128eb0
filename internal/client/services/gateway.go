package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/anagrafe/internal/client/client"
	"github.com/dmitrijs2005/anagrafe/internal/client/dialect"
	"github.com/dmitrijs2005/anagrafe/internal/client/models"
	"github.com/dmitrijs2005/anagrafe/internal/client/taxcode"
	"github.com/dmitrijs2005/anagrafe/internal/logging"
)

const personsPath = "/persons"

// Gateway performs single-entity reads and writes against the backend.
type Gateway interface {
	Get(ctx context.Context, id string) (models.Person, error)
	Create(ctx context.Context, p models.Person) (models.Person, error)
	Update(ctx context.Context, id string, p models.Person) (models.Person, error)
	Delete(ctx context.Context, id string) error
}

type gateway struct {
	client  client.Client
	dialect dialect.Dialect
	logger  logging.Logger
}

// NewGateway returns a Gateway that writes payloads in dialect d.
func NewGateway(c client.Client, d dialect.Dialect, logger logging.Logger) Gateway {
	if logger == nil {
		logger = logging.Discard()
	}
	return &gateway{client: c, dialect: d, logger: logger}
}

func personPath(id string) string {
	return personsPath + "/" + taxcode.PathSegment(id)
}

func (g *gateway) Get(ctx context.Context, id string) (models.Person, error) {
	id, err := requireID(id)
	if err != nil {
		return models.Person{}, err
	}

	raw, err := g.client.Get(ctx, personPath(id), nil)
	if err != nil {
		return models.Person{}, g.mapError(ctx, "get", id, err)
	}
	return dialect.ToCanonical(raw), nil
}

func (g *gateway) Create(ctx context.Context, p models.Person) (models.Person, error) {
	if err := ValidateForSave(p); err != nil {
		return models.Person{}, err
	}
	p.TaxCode = taxcode.Canonicalize(p.TaxCode)

	raw, err := g.client.Post(ctx, personsPath, dialect.FromCanonical(p, g.dialect))
	if err != nil {
		return models.Person{}, g.mapError(ctx, "create", p.TaxCode, err)
	}
	return dialect.ToCanonical(raw), nil
}

func (g *gateway) Update(ctx context.Context, id string, p models.Person) (models.Person, error) {
	id, err := requireID(id)
	if err != nil {
		return models.Person{}, err
	}
	// The identifier is immutable: the path id always wins over the form.
	p.TaxCode = id
	if err := ValidateForSave(p); err != nil {
		return models.Person{}, err
	}

	raw, err := g.client.Put(ctx, personPath(id), dialect.FromCanonical(p, g.dialect))
	if err != nil {
		return models.Person{}, g.mapError(ctx, "update", id, err)
	}
	return dialect.ToCanonical(raw), nil
}

func (g *gateway) Delete(ctx context.Context, id string) error {
	id, err := requireID(id)
	if err != nil {
		return err
	}

	if err := g.client.Delete(ctx, personPath(id)); err != nil {
		return g.mapError(ctx, "delete", id, err)
	}
	return nil
}

func (g *gateway) mapError(ctx context.Context, op, id string, err error) error {
	switch {
	case errors.Is(err, client.ErrCancelled):
		return err
	case client.IsNotFoundStatus(err):
		g.logger.Info(ctx, "person not found", "op", op, "tax_code", id)
		return fmt.Errorf("%s %s: %w", op, id, client.ErrNotFound)
	default:
		g.logger.Warn(ctx, "person request failed", "op", op, "tax_code", id, "error", err)
		return fmt.Errorf("%s %s: %w", op, id, err)
	}
}
