package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/mmynk/market/internal/entity"
	"github.com/mmynk/market/internal/storage"
)

type productRepository struct {
	uow *unitOfWork
}

var _ storage.ProductRepository = (*productRepository)(nil)

// Add stages a product insert. A missing ID is assigned here.
func (r *productRepository) Add(p *entity.Product) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	prod := *p
	r.uow.stage(func(ctx context.Context, tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO products (id, category_id, name, price) VALUES (?, ?, ?, ?)",
			prod.ID.String(), prod.ProductCategoryID.String(), prod.ProductName, prod.Price.String(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert product: %w", err)
		}
		return nil
	})
}

// Update stages a product update. An absent row is a no-op.
func (r *productRepository) Update(p *entity.Product) {
	prod := *p
	r.uow.stage(func(ctx context.Context, tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			"UPDATE products SET category_id = ?, name = ?, price = ? WHERE id = ?",
			prod.ProductCategoryID.String(), prod.ProductName, prod.Price.String(), prod.ID.String(),
		)
		if err != nil {
			return fmt.Errorf("failed to update product: %w", err)
		}
		return nil
	})
}

// DeleteByID stages a product delete.
func (r *productRepository) DeleteByID(id uuid.UUID) {
	r.uow.stage(func(ctx context.Context, tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM products WHERE id = ?", id.String()); err != nil {
			return fmt.Errorf("failed to delete product: %w", err)
		}
		return nil
	})
}

// GetByID retrieves the product without its category.
func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	p, err := scanProduct(r.uow.db.QueryRowContext(ctx,
		`SELECT p.id, p.category_id, p.name, p.price, ''
		 FROM products p WHERE p.id = ?`, id.String(),
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return p, nil
}

// GetByIDWithDetails retrieves the product with its category loaded.
func (r *productRepository) GetByIDWithDetails(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	p, err := scanProduct(r.uow.db.QueryRowContext(ctx,
		`SELECT p.id, p.category_id, p.name, p.price, COALESCE(pc.name, '')
		 FROM products p LEFT JOIN product_categories pc ON pc.id = p.category_id
		 WHERE p.id = ?`, id.String(),
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return p, nil
}

// GetAll retrieves every product without categories.
func (r *productRepository) GetAll(ctx context.Context) ([]entity.Product, error) {
	return r.queryProducts(ctx,
		`SELECT p.id, p.category_id, p.name, p.price, '' FROM products p`)
}

// GetAllWithDetails retrieves every product with its category loaded.
func (r *productRepository) GetAllWithDetails(ctx context.Context) ([]entity.Product, error) {
	return r.queryProducts(ctx,
		`SELECT p.id, p.category_id, p.name, p.price, COALESCE(pc.name, '')
		 FROM products p LEFT JOIN product_categories pc ON pc.id = p.category_id`)
}

func (r *productRepository) queryProducts(ctx context.Context, query string) ([]entity.Product, error) {
	rows, err := r.uow.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get products: %w", err)
	}
	defer rows.Close()

	var products []entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate products: %w", err)
	}
	return products, nil
}

// scanProduct reads one product row; the fifth column is the (possibly
// empty) joined category name.
func scanProduct(row rowScanner) (*entity.Product, error) {
	var (
		p        entity.Product
		rawID    string
		rawCat   string
		rawPrice string
		catName  string
	)
	if err := row.Scan(&rawID, &rawCat, &p.ProductName, &rawPrice, &catName); err != nil {
		return nil, err
	}

	var err error
	p.ID, err = uuid.Parse(rawID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse product id: %w", err)
	}
	p.ProductCategoryID, err = uuid.Parse(rawCat)
	if err != nil {
		return nil, fmt.Errorf("failed to parse category id: %w", err)
	}
	p.Price, err = parseDecimal(rawPrice)
	if err != nil {
		return nil, err
	}
	p.Category = entity.ProductCategory{ID: p.ProductCategoryID, CategoryName: catName}
	return &p, nil
}
