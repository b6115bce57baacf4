package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/mmynk/market/internal/entity"
	"github.com/mmynk/market/internal/storage"
)

type categoryRepository struct {
	uow *unitOfWork
}

var _ storage.ProductCategoryRepository = (*categoryRepository)(nil)

// Add stages a category insert. A missing ID is assigned here.
func (r *categoryRepository) Add(c *entity.ProductCategory) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	cat := *c
	r.uow.stage(func(ctx context.Context, tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO product_categories (id, name) VALUES (?, ?)",
			cat.ID.String(), cat.CategoryName,
		)
		if err != nil {
			return fmt.Errorf("failed to insert product category: %w", err)
		}
		return nil
	})
}

// Update stages a category update. An absent row is a no-op, which keeps the
// services' best-effort category sync harmless when the category is missing.
func (r *categoryRepository) Update(c *entity.ProductCategory) {
	cat := *c
	r.uow.stage(func(ctx context.Context, tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			"UPDATE product_categories SET name = ? WHERE id = ?",
			cat.CategoryName, cat.ID.String(),
		)
		if err != nil {
			return fmt.Errorf("failed to update product category: %w", err)
		}
		return nil
	})
}

// DeleteByID stages a category delete.
func (r *categoryRepository) DeleteByID(id uuid.UUID) {
	r.uow.stage(func(ctx context.Context, tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM product_categories WHERE id = ?", id.String()); err != nil {
			return fmt.Errorf("failed to delete product category: %w", err)
		}
		return nil
	})
}

// GetByID retrieves a category.
func (r *categoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.ProductCategory, error) {
	c, err := scanCategory(r.uow.db.QueryRowContext(ctx,
		"SELECT id, name FROM product_categories WHERE id = ?", id.String(),
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product category: %w", err)
	}
	return c, nil
}

// GetAll retrieves every category.
func (r *categoryRepository) GetAll(ctx context.Context) ([]entity.ProductCategory, error) {
	rows, err := r.uow.db.QueryContext(ctx, "SELECT id, name FROM product_categories")
	if err != nil {
		return nil, fmt.Errorf("failed to get product categories: %w", err)
	}
	defer rows.Close()

	var categories []entity.ProductCategory
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product category: %w", err)
		}
		categories = append(categories, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate product categories: %w", err)
	}
	return categories, nil
}

func scanCategory(row rowScanner) (*entity.ProductCategory, error) {
	var (
		c     entity.ProductCategory
		rawID string
	)
	if err := row.Scan(&rawID, &c.CategoryName); err != nil {
		return nil, err
	}
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse category id: %w", err)
	}
	c.ID = id
	return &c, nil
}
