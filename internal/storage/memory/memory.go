// Package memory provides an in-memory implementation of the storage.Store
// interface.
//
// It mirrors the SQLite adapter's semantics: ID assignment at staging time,
// staged mutations applied together on Save, absent-row updates as no-ops,
// products rejected when their category does not exist (the schema's foreign
// key), and a failed Save leaving the store unchanged. Commit counters are
// exposed so tests can assert that an operation staged and committed exactly
// what it should, or nothing at all.
package memory

import (
	"context"
	"maps"
	"sync"

	"github.com/google/uuid"

	"github.com/mmynk/market/internal/entity"
	"github.com/mmynk/market/internal/storage"
)

// Ensure Store implements storage.Store
var _ storage.Store = (*Store)(nil)

// Store implements storage.Store using mutex-guarded maps.
type Store struct {
	mu         sync.Mutex
	customers  map[uuid.UUID]entity.Customer
	products   map[uuid.UUID]entity.Product
	categories map[uuid.UUID]entity.ProductCategory

	saves   int
	applied int

	// SaveErr, when set, makes every Save fail without applying anything.
	SaveErr error
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		customers:  make(map[uuid.UUID]entity.Customer),
		products:   make(map[uuid.UUID]entity.Product),
		categories: make(map[uuid.UUID]entity.ProductCategory),
	}
}

// UnitOfWork returns a fresh unit of work over this store.
func (s *Store) UnitOfWork() storage.UnitOfWork {
	return &unitOfWork{store: s}
}

// Close is a no-op.
func (s *Store) Close() error { return nil }

// Saves reports how many Save calls committed at least one staged mutation.
func (s *Store) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

// Applied reports the total number of staged mutations ever committed.
func (s *Store) Applied() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.applied
}

type stagedOp func(s *Store) error

type unitOfWork struct {
	store *Store
	ops   []stagedOp
}

var _ storage.UnitOfWork = (*unitOfWork)(nil)

func (u *unitOfWork) stage(op stagedOp) {
	u.ops = append(u.ops, op)
}

func (u *unitOfWork) Customers() storage.CustomerRepository {
	return &customerRepository{uow: u}
}

func (u *unitOfWork) Products() storage.ProductRepository {
	return &productRepository{uow: u}
}

func (u *unitOfWork) Categories() storage.ProductCategoryRepository {
	return &categoryRepository{uow: u}
}

// Save applies all staged mutations under the store lock. A failing
// operation restores the pre-Save state, like a rolled-back transaction.
func (u *unitOfWork) Save(ctx context.Context) error {
	ops := u.ops
	u.ops = nil
	if len(ops) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	if u.store.SaveErr != nil {
		return u.store.SaveErr
	}

	// Shallow map snapshots suffice: staged operations replace or delete
	// whole entries, never mutate stored values in place.
	customers := maps.Clone(u.store.customers)
	products := maps.Clone(u.store.products)
	categories := maps.Clone(u.store.categories)
	for _, op := range ops {
		if err := op(u.store); err != nil {
			u.store.customers = customers
			u.store.products = products
			u.store.categories = categories
			return err
		}
	}
	u.store.saves++
	u.store.applied += len(ops)
	return nil
}
