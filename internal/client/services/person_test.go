package services

import (
	"context"
	"net/http"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/anagrafe/internal/client/cache"
	"github.com/dmitrijs2005/anagrafe/internal/client/client"
	"github.com/dmitrijs2005/anagrafe/internal/client/dialect"
	"github.com/dmitrijs2005/anagrafe/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cf = "RSSMRA80A01H501U"

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newService(t *testing.T, fc *fakeClient) (PersonService, *cache.Store, *testClock) {
	t.Helper()
	clock := &testClock{now: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)}
	store, err := cache.New(time.Minute, cache.WithClock(clock.Now))
	require.NoError(t, err)

	svc := NewPersonService(
		NewGateway(fc, dialect.Italian, nil),
		NewResolver(fc, 20, nil),
		store, nil,
	)
	return svc, store, clock
}

func TestPersonService_GetIsCached(t *testing.T) {
	fc := newFakeClient().on(http.MethodGet, "/persons/"+cf, apiPerson(cf, "Rossi"), nil)
	svc, _, clock := newService(t, fc)
	ctx := context.Background()

	p1, err := svc.Get(ctx, cf)
	require.NoError(t, err)
	p2, err := svc.Get(ctx, " "+cf+" ")
	require.NoError(t, err)
	assert.Equal(t, p1, p2)
	assert.Len(t, fc.Calls(), 1)

	clock.Advance(61 * time.Second)
	_, err = svc.Get(ctx, cf)
	require.NoError(t, err)
	assert.Len(t, fc.Calls(), 2, "expired entry refetched")
}

func TestPersonService_NotFoundNotCached(t *testing.T) {
	fc := newFakeClient()
	svc, store, _ := newService(t, fc)

	_, err := svc.Get(context.Background(), cf)
	assert.ErrorIs(t, err, client.ErrNotFound)
	assert.Zero(t, store.Len())
}

func TestPersonService_UpdateThenGetServedFromCache(t *testing.T) {
	fc := newFakeClient().
		on(http.MethodGet, "/persons/"+cf, apiPerson(cf, "Rossi"), nil).
		on(http.MethodPut, "/persons/"+cf, apiPerson(cf, "Rossini"), nil)
	svc, _, _ := newService(t, fc)
	ctx := context.Background()

	_, err := svc.Get(ctx, cf)
	require.NoError(t, err)

	p := validPerson()
	p.LastName = "Rossini"
	updated, err := svc.Update(ctx, cf, p)
	require.NoError(t, err)
	fc.Reset()

	got, err := svc.Get(ctx, cf)
	require.NoError(t, err)
	assert.Equal(t, updated, got)
	assert.Equal(t, "Rossini", got.LastName)
	assert.Empty(t, fc.Calls())
}

func TestPersonService_DeleteThenGetHitsNetwork(t *testing.T) {
	fc := newFakeClient().
		on(http.MethodGet, "/persons/"+cf, apiPerson(cf, "Rossi"), nil).
		on(http.MethodDelete, "/persons/"+cf, nil, nil)
	svc, _, _ := newService(t, fc)
	ctx := context.Background()

	_, err := svc.Get(ctx, cf)
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, cf))
	fc.Reset()

	_, err = svc.Get(ctx, cf)
	require.NoError(t, err)
	require.Len(t, fc.Calls(), 1)
	assert.Equal(t, http.MethodGet, fc.Calls()[0].Method)
}

func TestPersonService_CreateSeedsCache(t *testing.T) {
	fc := newFakeClient().on(http.MethodPost, "/persons", apiPerson(cf, "Rossi"), nil)
	svc, _, _ := newService(t, fc)
	ctx := context.Background()

	created, err := svc.Create(ctx, validPerson())
	require.NoError(t, err)
	fc.Reset()

	got, err := svc.Get(ctx, cf)
	require.NoError(t, err)
	assert.Equal(t, created, got)
	assert.Empty(t, fc.Calls())
}

func TestPersonService_MutationWithoutIDInBodyIsNotCached(t *testing.T) {
	fc := newFakeClient().
		on(http.MethodGet, "/persons/"+cf, apiPerson(cf, "Rossi"), nil).
		on(http.MethodPost, "/persons", map[string]any{"nome": "Mario"}, nil).
		on(http.MethodPut, "/persons/"+cf, nil, nil)
	svc, store, _ := newService(t, fc)
	ctx := context.Background()

	p := validPerson()
	p.TaxCode = "rssmra80a01h501u"
	_, err := svc.Create(ctx, p)
	require.NoError(t, err)
	_, ok := store.Get(cache.PersonKey(cf))
	assert.False(t, ok, "blank create body cached")

	_, err = svc.Get(ctx, cf)
	require.NoError(t, err)
	_, ok = store.Get(cache.PersonKey(cf))
	require.True(t, ok)

	_, err = svc.Update(ctx, cf, validPerson())
	require.NoError(t, err)
	_, ok = store.Get(cache.PersonKey(cf))
	assert.False(t, ok, "stale entry kept after empty update body")
}

func TestPersonService_SearchCachedAndInvalidatedByMutations(t *testing.T) {
	fc := newFakeClient().
		on(http.MethodGet, "/persons/search", []any{map[string]any{"cognome": "Rossi"}}, nil).
		on(http.MethodPost, "/persons", apiPerson(cf, "Rossi"), nil).
		on(http.MethodPut, "/persons/"+cf, apiPerson(cf, "Rossi"), nil).
		on(http.MethodDelete, "/persons/"+cf, nil, nil)
	svc, _, _ := newService(t, fc)
	ctx := context.Background()
	crit := models.Criteria{SurnameFragment: "ross"}

	searchCalls := func() int {
		n := 0
		for _, c := range fc.Calls() {
			if c.Path == "/persons/search" {
				n++
			}
		}
		return n
	}

	_, err := svc.Search(ctx, crit)
	require.NoError(t, err)
	_, err = svc.Search(ctx, crit)
	require.NoError(t, err)
	assert.Equal(t, 1, searchCalls())

	mutations := []func() error{
		func() error { _, err := svc.Create(ctx, validPerson()); return err },
		func() error { _, err := svc.Update(ctx, cf, validPerson()); return err },
		func() error { return svc.Delete(ctx, cf) },
	}
	for i, mutate := range mutations {
		require.NoError(t, mutate())
		_, err = svc.Search(ctx, crit)
		require.NoError(t, err)
		assert.Equal(t, i+2, searchCalls())
	}
}

func TestPersonService_SearchKeysByOwnParams(t *testing.T) {
	fc := newFakeClient().on(http.MethodGet, "/persons/search", []any{
		map[string]any{"cognome": "Rossi"},
		map[string]any{"cognome": "Bianchi"},
	}, nil)
	svc, _, _ := newService(t, fc)
	ctx := context.Background()

	a, err := svc.Search(ctx, models.Criteria{SurnameFragment: "ross"})
	require.NoError(t, err)
	b, err := svc.Search(ctx, models.Criteria{SurnameFragment: "bian"})
	require.NoError(t, err)

	assert.Equal(t, []string{"Rossi"}, surnames(a))
	assert.Equal(t, []string{"Bianchi"}, surnames(b))
}

func TestPersonService_CancelledSkipsCacheWrites(t *testing.T) {
	fc := newFakeClient()
	svc, store, _ := newService(t, fc)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Search(ctx, models.Criteria{SurnameFragment: "Rossi"})
	assert.ErrorIs(t, err, client.ErrCancelled)
	_, err = svc.Get(ctx, cf)
	assert.ErrorIs(t, err, client.ErrCancelled)
	assert.Zero(t, store.Len())
}

// cancelAfterClient completes the request and then cancels, as when the user
// navigates away while a response is already in flight.
type cancelAfterClient struct {
	*fakeClient
	cancel context.CancelFunc
}

func (c *cancelAfterClient) Get(ctx context.Context, path string, q url.Values) (any, error) {
	out, err := c.fakeClient.Get(ctx, path, q)
	c.cancel()
	return out, err
}

func TestPersonService_LateResponseAfterCancelIsNotCached(t *testing.T) {
	fc := newFakeClient().on(http.MethodGet, "/persons/"+cf, apiPerson(cf, "Rossi"), nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := cache.New(time.Minute)
	require.NoError(t, err)
	cc := &cancelAfterClient{fakeClient: fc, cancel: cancel}
	svc := NewPersonService(NewGateway(cc, dialect.Italian, nil), NewResolver(cc, 20, nil), store, nil)

	_, err = svc.Get(ctx, cf)
	require.NoError(t, err)
	assert.Zero(t, store.Len())
}

func TestPersonService_MutationAfterCancelStillInvalidates(t *testing.T) {
	fc := newFakeClient().
		on(http.MethodGet, "/persons/search", []any{}, nil).
		on(http.MethodDelete, "/persons/"+cf, nil, nil)
	svc, store, _ := newService(t, fc)

	_, err := svc.Search(context.Background(), models.Criteria{})
	require.NoError(t, err)
	require.Equal(t, 1, store.Len())

	ctx, cancel := context.WithCancel(context.Background())
	dc := &deleteThenCancel{fakeClient: fc, cancel: cancel}
	svc = NewPersonService(NewGateway(dc, dialect.Italian, nil), NewResolver(dc, 20, nil), store, nil)

	require.NoError(t, svc.Delete(ctx, cf))
	assert.Zero(t, store.Len())
}

func TestPersonService_UpdateAfterCancelDropsStaleEntry(t *testing.T) {
	fc := newFakeClient().
		on(http.MethodGet, "/persons/"+cf, apiPerson(cf, "Rossi"), nil).
		on(http.MethodPut, "/persons/"+cf, apiPerson(cf, "Verdi"), nil)
	svc, store, _ := newService(t, fc)

	_, err := svc.Get(context.Background(), cf)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	mc := &mutateThenCancel{fakeClient: fc, cancel: cancel}
	svc = NewPersonService(NewGateway(mc, dialect.Italian, nil), NewResolver(mc, 20, nil), store, nil)

	p := validPerson()
	p.LastName = "Verdi"
	updated, err := svc.Update(ctx, cf, p)
	require.NoError(t, err)
	assert.Equal(t, "Verdi", updated.LastName)

	fc.on(http.MethodGet, "/persons/"+cf, apiPerson(cf, "Verdi"), nil)
	fc.Reset()
	got, err := svc.Get(context.Background(), cf)
	require.NoError(t, err)
	assert.Equal(t, "Verdi", got.LastName)
	assert.Len(t, fc.Calls(), 1, "cached pre-update record served")
}

func TestPersonService_CreateAfterCancelIsNotCached(t *testing.T) {
	fc := newFakeClient().on(http.MethodPost, "/persons", apiPerson(cf, "Rossi"), nil)
	_, store, _ := newService(t, fc)

	ctx, cancel := context.WithCancel(context.Background())
	mc := &mutateThenCancel{fakeClient: fc, cancel: cancel}
	svc := NewPersonService(NewGateway(mc, dialect.Italian, nil), NewResolver(mc, 20, nil), store, nil)

	_, err := svc.Create(ctx, validPerson())
	require.NoError(t, err)
	assert.Zero(t, store.Len())
}

// mutateThenCancel cancels the caller's context once a write has been answered.
type mutateThenCancel struct {
	*fakeClient
	cancel context.CancelFunc
}

func (c *mutateThenCancel) Post(ctx context.Context, path string, body any) (any, error) {
	out, err := c.fakeClient.Post(ctx, path, body)
	c.cancel()
	return out, err
}

func (c *mutateThenCancel) Put(ctx context.Context, path string, body any) (any, error) {
	out, err := c.fakeClient.Put(ctx, path, body)
	c.cancel()
	return out, err
}

type deleteThenCancel struct {
	*fakeClient
	cancel context.CancelFunc
}

func (c *deleteThenCancel) Delete(ctx context.Context, path string) error {
	err := c.fakeClient.Delete(ctx, path)
	c.cancel()
	return err
}
