package services

import (
	"context"
	"slices"

	"github.com/dmitrijs2005/anagrafe/internal/client/cache"
	"github.com/dmitrijs2005/anagrafe/internal/client/models"
	"github.com/dmitrijs2005/anagrafe/internal/client/taxcode"
	"github.com/dmitrijs2005/anagrafe/internal/logging"
)

// PersonService is the cached entry point used by the UI. Reads are served
// from the cache while fresh; every successful mutation updates the cache
// before the call returns.
type PersonService interface {
	Get(ctx context.Context, id string) (models.Person, error)
	Search(ctx context.Context, c models.Criteria) ([]models.SearchRow, error)
	Create(ctx context.Context, p models.Person) (models.Person, error)
	Update(ctx context.Context, id string, p models.Person) (models.Person, error)
	Delete(ctx context.Context, id string) error
}

type personService struct {
	gateway  Gateway
	resolver Resolver
	cache    *cache.Store
	logger   logging.Logger
}

func NewPersonService(g Gateway, r Resolver, store *cache.Store, logger logging.Logger) PersonService {
	if logger == nil {
		logger = logging.Discard()
	}
	return &personService{gateway: g, resolver: r, cache: store, logger: logger}
}

func (s *personService) Get(ctx context.Context, id string) (models.Person, error) {
	key := cache.PersonKey(taxcode.Canonicalize(id))
	if v, ok := s.cache.Get(key); ok {
		s.logger.Debug(ctx, "cache hit", "key", key.String())
		return v.(models.Person), nil
	}

	p, err := s.gateway.Get(ctx, id)
	if err != nil {
		return models.Person{}, err
	}
	s.store(ctx, key, p)
	return p, nil
}

func (s *personService) Search(ctx context.Context, c models.Criteria) ([]models.SearchRow, error) {
	// The key comes from this request's own parameters, so a superseded
	// search can only ever write the entry it was asked for.
	key := cache.SearchKey(s.resolver.Params(c))
	if v, ok := s.cache.Get(key); ok {
		s.logger.Debug(ctx, "cache hit", "key", key.String())
		return slices.Clone(v.([]models.SearchRow)), nil
	}

	rows, err := s.resolver.Search(ctx, c)
	if err != nil {
		return nil, err
	}
	s.store(ctx, key, slices.Clone(rows))
	return rows, nil
}

func (s *personService) Create(ctx context.Context, p models.Person) (models.Person, error) {
	created, err := s.gateway.Create(ctx, p)
	if err != nil {
		return models.Person{}, err
	}

	id := taxcode.Canonicalize(created.TaxCode)
	if id == "" {
		id = taxcode.Canonicalize(p.TaxCode)
	}
	s.replace(ctx, cache.PersonKey(id), created)
	s.invalidateSearches(ctx)
	return created, nil
}

func (s *personService) Update(ctx context.Context, id string, p models.Person) (models.Person, error) {
	updated, err := s.gateway.Update(ctx, id, p)
	if err != nil {
		return models.Person{}, err
	}

	s.replace(ctx, cache.PersonKey(taxcode.Canonicalize(id)), updated)
	s.invalidateSearches(ctx)
	return updated, nil
}

func (s *personService) Delete(ctx context.Context, id string) error {
	if err := s.gateway.Delete(ctx, id); err != nil {
		return err
	}

	key := cache.PersonKey(taxcode.Canonicalize(id))
	if err := s.cache.Delete(key); err != nil {
		s.logger.Error(ctx, "cache delete failed", "key", key.String(), "error", err)
	}
	s.invalidateSearches(ctx)
	return nil
}

// store writes v unless ctx was cancelled meanwhile.
func (s *personService) store(ctx context.Context, key cache.Key, v any) {
	if ctx.Err() != nil {
		s.logger.Debug(ctx, "cache write skipped", "key", key.String())
		return
	}
	if err := s.cache.Set(key, v, 0); err != nil {
		s.logger.Error(ctx, "cache write failed", "key", key.String(), "error", err)
	}
}

// replace stores the representation returned by a mutation. When it cannot
// be stored (cancelled ctx, or a body without an identifier) the old entry
// is dropped so the next read refetches.
func (s *personService) replace(ctx context.Context, key cache.Key, p models.Person) {
	if ctx.Err() == nil && taxcode.Canonicalize(p.TaxCode) != "" {
		s.store(ctx, key, p)
		return
	}
	s.logger.Debug(ctx, "cache entry dropped after mutation", "key", key.String())
	if err := s.cache.Delete(key); err != nil {
		s.logger.Error(ctx, "cache delete failed", "key", key.String(), "error", err)
	}
}

func (s *personService) invalidateSearches(ctx context.Context) {
	n, err := s.cache.InvalidateFamily(cache.FamilySearch)
	if err != nil {
		s.logger.Error(ctx, "search cache invalidation failed", "error", err)
		return
	}
	s.logger.Debug(ctx, "search cache invalidated", "entries", n)
}
