package cache

import (
	"context"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newStore(t *testing.T) (*Store, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)}
	s, err := New(time.Minute, WithClock(clock.Now))
	require.NoError(t, err)
	return s, clock
}

func TestSearchKey_OrderIndependent(t *testing.T) {
	a := SearchKey(url.Values{"lastName": {"Rossi"}, "province": {"RM"}})
	b := SearchKey(url.Values{"province": {"RM"}, "lastName": {"Rossi"}})
	assert.Equal(t, a, b)
	assert.Equal(t, FamilySearch, a.Family)
	assert.NotEqual(t, a, SearchKey(url.Values{"lastName": {"Rossi"}}))
}

func TestNew_DefaultTTL(t *testing.T) {
	s, err := New(0)
	require.NoError(t, err)
	assert.Equal(t, DefaultTTL, s.TTL())
}

func TestStore_SetGet(t *testing.T) {
	s, _ := newStore(t)

	_, ok := s.Get(PersonKey("X"))
	assert.False(t, ok)

	require.NoError(t, s.Set(PersonKey("X"), "one", 0))
	v, ok := s.Get(PersonKey("X"))
	require.True(t, ok)
	assert.Equal(t, "one", v)

	require.NoError(t, s.Set(PersonKey("X"), "two", 0))
	v, _ = s.Get(PersonKey("X"))
	assert.Equal(t, "two", v)
	assert.Equal(t, 1, s.Len())
}

func TestStore_Expiry(t *testing.T) {
	s, clock := newStore(t)
	require.NoError(t, s.Set(PersonKey("X"), "v", 0))
	require.NoError(t, s.Set(PersonKey("Y"), "v", 5*time.Minute))

	clock.Advance(time.Minute)
	_, ok := s.Get(PersonKey("X"))
	assert.True(t, ok, "still fresh at the window boundary")

	clock.Advance(time.Second)
	_, ok = s.Get(PersonKey("X"))
	assert.False(t, ok)
	assert.Equal(t, 1, s.Len(), "expired entry removed on read")

	_, ok = s.Get(PersonKey("Y"))
	assert.True(t, ok, "explicit ttl honoured")
}

func TestStore_Delete(t *testing.T) {
	s, _ := newStore(t)
	require.NoError(t, s.Set(PersonKey("X"), 1, 0))

	require.NoError(t, s.Delete(PersonKey("X")))
	require.NoError(t, s.Delete(PersonKey("missing")))
	_, ok := s.Get(PersonKey("X"))
	assert.False(t, ok)
}

func TestStore_InvalidateFamily(t *testing.T) {
	s, _ := newStore(t)
	require.NoError(t, s.Set(PersonKey("X"), 1, 0))
	require.NoError(t, s.Set(SearchKey(url.Values{"lastName": {"a"}}), 2, 0))
	require.NoError(t, s.Set(SearchKey(url.Values{"lastName": {"b"}}), 3, 0))

	n, err := s.InvalidateFamily(FamilySearch)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	_, ok := s.Get(PersonKey("X"))
	assert.True(t, ok)
	assert.Equal(t, 1, s.Len())
}

func TestStore_InvalidateFunc(t *testing.T) {
	s, _ := newStore(t)
	for _, id := range []string{"A1", "A2", "B1"} {
		require.NoError(t, s.Set(PersonKey(id), id, 0))
	}

	n, err := s.InvalidateFunc(func(k Key) bool { return k.ID[0] == 'A' })
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	_, ok := s.Get(PersonKey("B1"))
	assert.True(t, ok)
	_, ok = s.Get(PersonKey("A1"))
	assert.False(t, ok)
}

func TestStore_Prune(t *testing.T) {
	s, clock := newStore(t)
	require.NoError(t, s.Set(PersonKey("old"), 1, 0))
	clock.Advance(30 * time.Second)
	require.NoError(t, s.Set(PersonKey("new"), 2, 0))
	clock.Advance(45 * time.Second)

	n, err := s.Prune()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 1, s.Len())
}

func TestStore_RunStopsOnCancel(t *testing.T) {
	s, clock := newStore(t)
	require.NoError(t, s.Set(PersonKey("X"), 1, 0))
	clock.Advance(2 * time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx, 5*time.Millisecond)
		close(done)
	}()

	assert.Eventually(t, func() bool { return s.Len() == 0 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("janitor did not stop")
	}
}
