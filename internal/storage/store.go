// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/google/uuid"

	"github.com/mmynk/market/internal/entity"
)

// Store opens units of work against a storage backend. This abstraction
// allows swapping backends (SQLite, in-memory, etc.) without changing the
// service layer.
//
// The Store itself must be safe for concurrent use; each service operation
// works against its own UnitOfWork.
type Store interface {
	// UnitOfWork returns a fresh unit of work. Units of work are not safe
	// for concurrent use; callers own one for the duration of a single
	// operation.
	UnitOfWork() UnitOfWork

	// Close releases any resources held by the store.
	Close() error
}

// UnitOfWork groups repository operations into one transactional boundary.
// Mutations stage synchronously; Save commits everything staged since the
// previous Save atomically and in staging order. Reads execute immediately.
type UnitOfWork interface {
	Customers() CustomerRepository
	Products() ProductRepository
	Categories() ProductCategoryRepository

	// Save commits all staged mutations. A failed Save leaves the backend
	// unchanged and drops the staged operations.
	Save(ctx context.Context) error
}

// CustomerRepository persists customers together with their owned person
// records and, on detail reads, their receipts and receipt details.
type CustomerRepository interface {
	// Add stages a create. Missing IDs (customer, person, receipts) are
	// assigned at staging time.
	Add(c *entity.Customer)

	// Update stages an update of the customer and its person record.
	Update(c *entity.Customer)

	// DeleteByID stages a delete. Deleting an absent ID is a silent no-op;
	// services check existence first.
	DeleteByID(id uuid.UUID)

	// GetByID returns the bare customer, or (nil, nil) when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error)

	// GetByIDWithDetails returns the customer with person, receipts and
	// receipt details loaded, or (nil, nil) when absent.
	GetByIDWithDetails(ctx context.Context, id uuid.UUID) (*entity.Customer, error)

	// GetAllWithDetails returns every customer with related data loaded.
	// Order follows the backend and is not otherwise guaranteed.
	GetAllWithDetails(ctx context.Context) ([]entity.Customer, error)
}

// ProductRepository persists products.
type ProductRepository interface {
	Add(p *entity.Product)
	Update(p *entity.Product)
	DeleteByID(id uuid.UUID)

	// GetByID returns the bare product, or (nil, nil) when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// GetByIDWithDetails returns the product with its category loaded, or
	// (nil, nil) when absent.
	GetByIDWithDetails(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// GetAll returns every product without related data.
	GetAll(ctx context.Context) ([]entity.Product, error)

	// GetAllWithDetails returns every product with its category loaded.
	GetAllWithDetails(ctx context.Context) ([]entity.Product, error)
}

// ProductCategoryRepository persists product categories.
type ProductCategoryRepository interface {
	Add(c *entity.ProductCategory)
	Update(c *entity.ProductCategory)
	DeleteByID(id uuid.UUID)

	// GetByID returns the category, or (nil, nil) when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*entity.ProductCategory, error)

	// GetAll returns every category.
	GetAll(ctx context.Context) ([]entity.ProductCategory, error)
}
