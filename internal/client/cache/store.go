// Package cache implements the in-memory, time-bounded read cache used by
// the person service. Entries live in a go-memdb table indexed by key and by
// key family, so a whole family can be invalidated in one transaction.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hashicorp/go-memdb"
)

// DefaultTTL is the freshness window used when none is configured.
const DefaultTTL = 60 * time.Second

const (
	tableEntries = "entries"
	indexID      = "id"
	indexFamily  = "family"
)

type entry struct {
	Key       string
	Family    string
	ID        string
	Value     any
	ExpiresAt time.Time
}

func schema() *memdb.DBSchema {
	return &memdb.DBSchema{
		Tables: map[string]*memdb.TableSchema{
			tableEntries: {
				Name: tableEntries,
				Indexes: map[string]*memdb.IndexSchema{
					indexID: {
						Name:    indexID,
						Unique:  true,
						Indexer: &memdb.StringFieldIndex{Field: "Key"},
					},
					indexFamily: {
						Name:    indexFamily,
						Indexer: &memdb.StringFieldIndex{Field: "Family"},
					},
				},
			},
		},
	}
}

// Store is a TTL cache safe for concurrent use.
type Store struct {
	db  *memdb.MemDB
	ttl time.Duration
	now func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New creates an empty store. A non-positive defaultTTL selects DefaultTTL.
func New(defaultTTL time.Duration, opts ...Option) (*Store, error) {
	db, err := memdb.NewMemDB(schema())
	if err != nil {
		return nil, fmt.Errorf("create cache db: %w", err)
	}
	if defaultTTL <= 0 {
		defaultTTL = DefaultTTL
	}
	s := &Store{db: db, ttl: defaultTTL, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// TTL returns the default freshness window.
func (s *Store) TTL() time.Duration { return s.ttl }

// Get returns the value under key if it is still fresh. An expired entry is
// removed and reported absent.
func (s *Store) Get(key Key) (any, bool) {
	txn := s.db.Txn(false)
	raw, err := txn.First(tableEntries, indexID, key.String())
	txn.Abort()
	if err != nil || raw == nil {
		return nil, false
	}

	e := raw.(*entry)
	if !s.expired(e) {
		return e.Value, true
	}

	wtxn := s.db.Txn(true)
	defer wtxn.Abort()
	// Another writer may have refreshed the entry in between.
	raw, err = wtxn.First(tableEntries, indexID, key.String())
	if err == nil && raw != nil && s.expired(raw.(*entry)) {
		if err := wtxn.Delete(tableEntries, raw); err == nil {
			wtxn.Commit()
		}
	}
	return nil, false
}

// Set stores v under key. ttl <= 0 selects the store default.
func (s *Store) Set(key Key, v any, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = s.ttl
	}
	e := &entry{
		Key:       key.String(),
		Family:    key.Family,
		ID:        key.ID,
		Value:     v,
		ExpiresAt: s.now().Add(ttl),
	}

	txn := s.db.Txn(true)
	defer txn.Abort()
	if err := txn.Insert(tableEntries, e); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	txn.Commit()
	return nil
}

// Delete removes key. Deleting an absent key is not an error.
func (s *Store) Delete(key Key) error {
	txn := s.db.Txn(true)
	defer txn.Abort()
	_, err := txn.DeleteAll(tableEntries, indexID, key.String())
	if err != nil && !errors.Is(err, memdb.ErrNotFound) {
		return fmt.Errorf("cache delete %s: %w", key, err)
	}
	txn.Commit()
	return nil
}

// InvalidateFamily drops every entry of the given family and reports how
// many were removed.
func (s *Store) InvalidateFamily(family string) (int, error) {
	txn := s.db.Txn(true)
	defer txn.Abort()
	n, err := txn.DeleteAll(tableEntries, indexFamily, family)
	if err != nil {
		return 0, fmt.Errorf("cache invalidate %s: %w", family, err)
	}
	txn.Commit()
	return n, nil
}

// InvalidateFunc drops every entry whose key satisfies match.
func (s *Store) InvalidateFunc(match func(Key) bool) (int, error) {
	return s.deleteWhere(func(e *entry) bool {
		return match(Key{Family: e.Family, ID: e.ID})
	})
}

// Prune drops expired entries.
func (s *Store) Prune() (int, error) {
	return s.deleteWhere(s.expired)
}

// Len counts stored entries, expired ones included.
func (s *Store) Len() int {
	txn := s.db.Txn(false)
	defer txn.Abort()
	it, err := txn.Get(tableEntries, indexID)
	if err != nil {
		return 0
	}
	n := 0
	for obj := it.Next(); obj != nil; obj = it.Next() {
		n++
	}
	return n
}

// Run prunes expired entries every interval until ctx is done.
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_, _ = s.Prune()
		}
	}
}

func (s *Store) expired(e *entry) bool {
	return s.now().After(e.ExpiresAt)
}

// deleteWhere collects matches first; memdb iterators must not observe
// their own transaction's deletes.
func (s *Store) deleteWhere(match func(*entry) bool) (int, error) {
	txn := s.db.Txn(true)
	defer txn.Abort()

	it, err := txn.Get(tableEntries, indexID)
	if err != nil {
		return 0, fmt.Errorf("cache scan: %w", err)
	}
	var doomed []*entry
	for obj := it.Next(); obj != nil; obj = it.Next() {
		if e := obj.(*entry); match(e) {
			doomed = append(doomed, e)
		}
	}
	for _, e := range doomed {
		if err := txn.Delete(tableEntries, e); err != nil {
			return 0, fmt.Errorf("cache delete %s: %w", e.Key, err)
		}
	}
	txn.Commit()
	return len(doomed), nil
}
