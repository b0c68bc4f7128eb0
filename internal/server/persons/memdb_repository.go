package persons

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/anagrafe/internal/client/models"
	"github.com/hashicorp/go-memdb"
)

const (
	tablePersons = "persons"
	indexID      = "id"
)

func schema() *memdb.DBSchema {
	return &memdb.DBSchema{
		Tables: map[string]*memdb.TableSchema{
			tablePersons: {
				Name: tablePersons,
				Indexes: map[string]*memdb.IndexSchema{
					indexID: {
						Name:    indexID,
						Unique:  true,
						Indexer: &memdb.StringFieldIndex{Field: "TaxCode"},
					},
				},
			},
		},
	}
}

// MemDBRepository keeps records in a go-memdb table. Lists come back ordered
// by tax code.
type MemDBRepository struct {
	db *memdb.MemDB
}

// NewMemDBRepository creates an empty in-memory person repository.
func NewMemDBRepository() (*MemDBRepository, error) {
	db, err := memdb.NewMemDB(schema())
	if err != nil {
		return nil, fmt.Errorf("create persons db: %w", err)
	}
	return &MemDBRepository{db: db}, nil
}

func (r *MemDBRepository) Get(ctx context.Context, id string) (models.Person, error) {
	txn := r.db.Txn(false)
	defer txn.Abort()

	raw, err := txn.First(tablePersons, indexID, id)
	if err != nil {
		return models.Person{}, err
	}
	if raw == nil {
		return models.Person{}, ErrNotFound
	}
	return *raw.(*models.Person), nil
}

func (r *MemDBRepository) List(ctx context.Context, f Filter) ([]models.Person, error) {
	txn := r.db.Txn(false)
	defer txn.Abort()

	it, err := txn.Get(tablePersons, indexID)
	if err != nil {
		return nil, err
	}

	surname := strings.ToLower(f.Surname)
	out := make([]models.Person, 0)
	for obj := it.Next(); obj != nil; obj = it.Next() {
		p := obj.(*models.Person)
		if surname != "" && !strings.Contains(strings.ToLower(p.LastName), surname) {
			continue
		}
		if f.Province != "" && !strings.EqualFold(p.Address.Province, f.Province) {
			continue
		}
		out = append(out, *p)
		if f.Limit > 0 && len(out) == f.Limit {
			break
		}
	}
	return out, nil
}

func (r *MemDBRepository) Create(ctx context.Context, p models.Person) error {
	txn := r.db.Txn(true)
	defer txn.Abort()

	existing, err := txn.First(tablePersons, indexID, p.TaxCode)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrAlreadyExists
	}
	if err := txn.Insert(tablePersons, &p); err != nil {
		return err
	}
	txn.Commit()
	return nil
}

func (r *MemDBRepository) Update(ctx context.Context, p models.Person) error {
	txn := r.db.Txn(true)
	defer txn.Abort()

	existing, err := txn.First(tablePersons, indexID, p.TaxCode)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}
	if err := txn.Insert(tablePersons, &p); err != nil {
		return err
	}
	txn.Commit()
	return nil
}

func (r *MemDBRepository) Delete(ctx context.Context, id string) error {
	txn := r.db.Txn(true)
	defer txn.Abort()

	n, err := txn.DeleteAll(tablePersons, indexID, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	txn.Commit()
	return nil
}
