package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/anagrafe/internal/client/client"
	"github.com/dmitrijs2005/anagrafe/internal/client/dialect"
	"github.com/dmitrijs2005/anagrafe/internal/client/models"
	"github.com/dmitrijs2005/anagrafe/internal/logging"
)

const (
	searchPath   = "/persons/search"
	fallbackPath = "/persons"
)

// Resolver runs person searches against whichever search endpoint the
// backend offers, and re-applies the criteria locally.
type Resolver interface {
	// Params returns the exact query a search for c sends.
	Params(c models.Criteria) url.Values
	Search(ctx context.Context, c models.Criteria) ([]models.SearchRow, error)
}

type resolver struct {
	client   client.Client
	pageSize int
	logger   logging.Logger
}

// NewResolver returns a Resolver. pageSize is used when the criteria carry
// no MaxResults.
func NewResolver(c client.Client, pageSize int, logger logging.Logger) Resolver {
	if logger == nil {
		logger = logging.Discard()
	}
	return &resolver{client: c, pageSize: pageSize, logger: logger}
}

// IsEndpointUnavailable reports whether a status means the endpoint itself is
// missing or refuses the method, as opposed to a failing request.
func IsEndpointUnavailable(status int) bool {
	switch status {
	case http.StatusNotFound, http.StatusMethodNotAllowed, http.StatusNotImplemented:
		return true
	}
	return false
}

// BuildParams spreads the effective criteria over every parameter name the
// known backends accept.
func BuildParams(eff models.EffectiveCriteria) url.Values {
	q := url.Values{}
	if eff.Surname != "" {
		for _, name := range dialect.SurnameParams() {
			q.Set(name, eff.Surname)
		}
	}
	if eff.Province != "" {
		for _, name := range dialect.ProvinceParams() {
			q.Set(name, eff.Province)
		}
	}
	q.Set(dialect.SizeParam(), strconv.Itoa(eff.Size))
	return q
}

func (r *resolver) Params(c models.Criteria) url.Values {
	return BuildParams(c.Effective(r.pageSize))
}

func (r *resolver) Search(ctx context.Context, c models.Criteria) ([]models.SearchRow, error) {
	eff := c.Effective(r.pageSize)
	params := BuildParams(eff)

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", client.ErrCancelled, err)
	}

	raw, err := r.fetch(ctx, params)
	if err != nil {
		return nil, err
	}

	rows := FilterRows(Unwrap(raw), eff)
	if eff.Size > 0 && len(rows) > eff.Size {
		rows = rows[:eff.Size]
	}

	out := make([]models.SearchRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, dialect.ToSearchRow(row))
	}
	return out, nil
}

// fetch is the two-step pipeline: the dedicated endpoint first, the plain
// collection once when the first is unavailable.
func (r *resolver) fetch(ctx context.Context, params url.Values) (any, error) {
	raw, err := r.primary(ctx, params)
	if !errors.Is(err, client.ErrEndpointUnavailable) {
		return raw, err
	}

	r.logger.Info(ctx, "search endpoint unavailable, falling back",
		"endpoint", fallbackPath, "status", client.StatusCode(err))

	raw, err = r.client.Get(ctx, fallbackPath, params)
	if err != nil {
		if errors.Is(err, client.ErrCancelled) {
			return nil, err
		}
		return nil, fmt.Errorf("search fallback: %w", err)
	}
	return raw, nil
}

func (r *resolver) primary(ctx context.Context, params url.Values) (any, error) {
	raw, err := r.client.Get(ctx, searchPath, params)
	switch {
	case err == nil:
		return raw, nil
	case errors.Is(err, client.ErrCancelled):
		return nil, err
	case IsEndpointUnavailable(client.StatusCode(err)):
		return nil, fmt.Errorf("%w: %w", client.ErrEndpointUnavailable, err)
	default:
		return nil, fmt.Errorf("search: %w", err)
	}
}

// Unwrap extracts the row list from a plain array or a paged envelope
// ({"content": [...]}). Any other shape yields no rows.
func Unwrap(raw any) []any {
	switch v := raw.(type) {
	case []any:
		return v
	case map[string]any:
		if content, ok := v["content"].([]any); ok {
			return content
		}
	}
	return nil
}

// FilterRows keeps the object rows that satisfy eff: a case-insensitive
// surname substring and an exact province code. Applying it twice gives the
// same result as applying it once.
func FilterRows(rows []any, eff models.EffectiveCriteria) []map[string]any {
	surname := strings.ToLower(eff.Surname)
	out := make([]map[string]any, 0, len(rows))

	for _, item := range rows {
		row, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if surname != "" && !strings.Contains(strings.ToLower(dialect.RowLastName(row)), surname) {
			continue
		}
		if eff.Province != "" && strings.ToUpper(strings.TrimSpace(dialect.RowProvince(row))) != eff.Province {
			continue
		}
		out = append(out, row)
	}
	return out
}
