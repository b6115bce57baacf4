// Package sqlite provides a SQLite-backed implementation of the
// storage.Store interface.
//
// Mutations stage as closures on a unit of work and replay inside a single
// database transaction on Save, in staging order. Reads execute immediately
// against the database.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/market/internal/storage"
)

// Ensure Store implements storage.Store
var _ storage.Store = (*Store)(nil)

// Store implements storage.Store using SQLite.
type Store struct {
	db *sql.DB
}

// New creates a new Store with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// The _pragma parameter enables foreign keys on every pooled connection,
	// not just the one a plain PRAGMA statement would run on.
	db, err := sql.Open("sqlite", "file:"+dbPath+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

// UnitOfWork returns a fresh unit of work backed by this store's database.
func (s *Store) UnitOfWork() storage.UnitOfWork {
	return &unitOfWork{db: s.db}
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// stagedOp is one pending mutation, applied inside the Save transaction.
type stagedOp func(ctx context.Context, tx *sql.Tx) error

type unitOfWork struct {
	db  *sql.DB
	ops []stagedOp
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

// Save replays all staged mutations inside one transaction. Staged
// operations are consumed whether or not the commit succeeds.
func (u *unitOfWork) Save(ctx context.Context) error {
	ops := u.ops
	u.ops = nil
	if len(ops) == 0 {
		return nil
	}

	tx, err := u.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, op := range ops {
		if err := op(ctx, tx); err != nil {
			return fmt.Errorf("failed to apply staged operation: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// parseDecimal converts a stored decimal string back into a decimal value.
func parseDecimal(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse stored decimal %q: %w", s, err)
	}
	return d, nil
}
