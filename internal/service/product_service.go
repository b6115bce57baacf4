package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/mmynk/market/internal/entity"
	"github.com/mmynk/market/internal/mapping"
	"github.com/mmynk/market/internal/models"
	"github.com/mmynk/market/internal/storage"
	"github.com/mmynk/market/internal/validation"
)

// ProductService handles product and product-category business operations.
type ProductService struct {
	store storage.Store
}

// NewProductService creates a new ProductService over the given storage
// backend.
func NewProductService(store storage.Store) *ProductService {
	return &ProductService{store: store}
}

// Add validates the model and stages two mutations on one unit of work: a
// best-effort update of the linked category (rebuilt from the model's
// category ID and name, since a mapper cannot safely construct a category
// from a bare ID) and the product create. Both commit together.
func (s *ProductService) Add(ctx context.Context, m *models.Product) error {
	if err := validation.Product(m); err != nil {
		return err
	}

	product := mapping.ProductFromModel(m)
	product.Category.ID = product.ProductCategoryID

	uow := s.store.UnitOfWork()
	uow.Categories().Update(&product.Category)
	uow.Products().Add(product)
	if err := uow.Save(ctx); err != nil {
		slog.Error("product add failed", "error", err)
		return err
	}
	return nil
}

// AddCategory validates the model, stages a category create, and commits.
func (s *ProductService) AddCategory(ctx context.Context, m *models.ProductCategory) error {
	if err := validation.ProductCategory(m); err != nil {
		return err
	}

	category := mapping.CategoryFromModel(m)

	uow := s.store.UnitOfWork()
	uow.Categories().Add(category)
	if err := uow.Save(ctx); err != nil {
		slog.Error("category add failed", "error", err)
		return err
	}
	return nil
}

// Delete removes a product by ID. A missing product is a caller mistake and
// yields the domain error.
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.store.UnitOfWork()

	product, err := uow.Products().GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return entity.NotFound("product does not exist")
	}

	uow.Products().DeleteByID(id)
	if err := uow.Save(ctx); err != nil {
		slog.Error("product delete failed", "product_id", id, "error", err)
		return err
	}
	return nil
}

// GetAll returns every product with its category, mapped to models.
func (s *ProductService) GetAll(ctx context.Context) ([]models.Product, error) {
	products, err := s.store.UnitOfWork().Products().GetAllWithDetails(ctx)
	if err != nil {
		return nil, err
	}
	return toProductModels(products), nil
}

// Categories returns every product category mapped to models, each carrying
// the derived ID list of its products.
func (s *ProductService) Categories(ctx context.Context) ([]models.ProductCategory, error) {
	uow := s.store.UnitOfWork()
	categories, err := uow.Categories().GetAll(ctx)
	if err != nil {
		return nil, err
	}
	products, err := uow.Products().GetAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]models.ProductCategory, 0, len(categories))
	for i := range categories {
		out = append(out, *mapping.CategoryToModelWithProducts(&categories[i], products))
	}
	return out, nil
}

// ByFilter narrows the product list by every filter predicate that is
// present; the predicates combine with logical AND. A nil filter is a
// programming error, not a domain failure.
func (s *ProductService) ByFilter(ctx context.Context, filter *models.FilterSearch) ([]models.Product, error) {
	if filter == nil {
		return nil, errors.New("filter search is required")
	}

	products, err := s.store.UnitOfWork().Products().GetAllWithDetails(ctx)
	if err != nil {
		return nil, err
	}

	var matched []entity.Product
	for _, p := range products {
		if filter.MaxPrice != nil && p.Price.GreaterThan(*filter.MaxPrice) {
			continue
		}
		if filter.MinPrice != nil && p.Price.LessThan(*filter.MinPrice) {
			continue
		}
		if filter.CategoryID != nil && p.ProductCategoryID != *filter.CategoryID {
			continue
		}
		matched = append(matched, p)
	}
	return toProductModels(matched), nil
}

// GetByID returns the mapped product with its category, or (nil, nil) when
// absent. Absence on this read path is not an error, unlike Delete.
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, err := s.store.UnitOfWork().Products().GetByIDWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return mapping.ProductToModel(product), nil
}

// RemoveCategory removes a category by ID. A missing category is a caller
// mistake and yields the domain error.
func (s *ProductService) RemoveCategory(ctx context.Context, categoryID uuid.UUID) error {
	uow := s.store.UnitOfWork()

	category, err := uow.Categories().GetByID(ctx, categoryID)
	if err != nil {
		return err
	}
	if category == nil {
		return entity.NotFound("product category does not exist")
	}

	uow.Categories().DeleteByID(categoryID)
	if err := uow.Save(ctx); err != nil {
		slog.Error("category delete failed", "category_id", categoryID, "error", err)
		return err
	}
	return nil
}

// Update validates the model, replaces the mapped category reference with
// one rebuilt from the model's category ID (and name, keeping the category
// in sync), and commits the category update and the product update as one
// atomic unit. The two mutations deliberately share a single commit point so
// a mid-operation failure cannot leave the category changed but the product
// stale.
func (s *ProductService) Update(ctx context.Context, m *models.Product) error {
	if err := validation.Product(m); err != nil {
		return err
	}

	product := mapping.ProductFromModel(m)
	product.Category = entity.ProductCategory{
		ID:           m.ProductCategoryID,
		CategoryName: m.CategoryName,
	}

	uow := s.store.UnitOfWork()
	uow.Categories().Update(&product.Category)
	uow.Products().Update(product)
	if err := uow.Save(ctx); err != nil {
		slog.Error("product update failed", "product_id", m.ID, "error", err)
		return err
	}
	return nil
}

// UpdateCategory validates the model, stages a category update, and commits.
func (s *ProductService) UpdateCategory(ctx context.Context, m *models.ProductCategory) error {
	if err := validation.ProductCategory(m); err != nil {
		return err
	}

	category := mapping.CategoryFromModel(m)

	uow := s.store.UnitOfWork()
	uow.Categories().Update(category)
	if err := uow.Save(ctx); err != nil {
		slog.Error("category update failed", "category_id", m.ID, "error", err)
		return err
	}
	return nil
}

func toProductModels(products []entity.Product) []models.Product {
	out := make([]models.Product, 0, len(products))
	for i := range products {
		out = append(out, *mapping.ProductToModel(&products[i]))
	}
	return out
}
