package memory

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mmynk/market/internal/entity"
	"github.com/mmynk/market/internal/storage"
)

type customerRepository struct {
	uow *unitOfWork
}

var _ storage.CustomerRepository = (*customerRepository)(nil)

func (r *customerRepository) Add(c *entity.Customer) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	c.Person.ID = c.ID
	for i := range c.Receipts {
		rec := &c.Receipts[i]
		if rec.ID == uuid.Nil {
			rec.ID = uuid.New()
		}
		rec.CustomerID = c.ID
		for j := range rec.Details {
			det := &rec.Details[j]
			if det.ID == uuid.Nil {
				det.ID = uuid.New()
			}
			det.ReceiptID = rec.ID
		}
	}
	cust := cloneCustomer(c)
	r.uow.stage(func(s *Store) error {
		s.customers[cust.ID] = cust
		return nil
	})
}

func (r *customerRepository) Update(c *entity.Customer) {
	cust := cloneCustomer(c)
	r.uow.stage(func(s *Store) error {
		existing, ok := s.customers[cust.ID]
		if !ok {
			return nil
		}
		// Receipts are owned by the store, not the update payload.
		cust.Receipts = existing.Receipts
		s.customers[cust.ID] = cust
		return nil
	})
}

func (r *customerRepository) DeleteByID(id uuid.UUID) {
	r.uow.stage(func(s *Store) error {
		delete(s.customers, id)
		return nil
	})
}

func (r *customerRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	r.uow.store.mu.Lock()
	defer r.uow.store.mu.Unlock()
	c, ok := r.uow.store.customers[id]
	if !ok {
		return nil, nil
	}
	bare := cloneCustomer(&c)
	bare.Receipts = nil
	return &bare, nil
}

func (r *customerRepository) GetByIDWithDetails(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	r.uow.store.mu.Lock()
	defer r.uow.store.mu.Unlock()
	c, ok := r.uow.store.customers[id]
	if !ok {
		return nil, nil
	}
	full := cloneCustomer(&c)
	return &full, nil
}

func (r *customerRepository) GetAllWithDetails(ctx context.Context) ([]entity.Customer, error) {
	r.uow.store.mu.Lock()
	defer r.uow.store.mu.Unlock()
	customers := make([]entity.Customer, 0, len(r.uow.store.customers))
	for _, c := range r.uow.store.customers {
		customers = append(customers, cloneCustomer(&c))
	}
	return customers, nil
}

type productRepository struct {
	uow *unitOfWork
}

var _ storage.ProductRepository = (*productRepository)(nil)

func (r *productRepository) Add(p *entity.Product) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	prod := *p
	r.uow.stage(func(s *Store) error {
		if _, ok := s.categories[prod.ProductCategoryID]; !ok {
			return fmt.Errorf("failed to insert product: no category %s", prod.ProductCategoryID)
		}
		s.products[prod.ID] = prod
		return nil
	})
}

func (r *productRepository) Update(p *entity.Product) {
	prod := *p
	r.uow.stage(func(s *Store) error {
		if _, ok := s.products[prod.ID]; !ok {
			return nil
		}
		if _, ok := s.categories[prod.ProductCategoryID]; !ok {
			return fmt.Errorf("failed to update product: no category %s", prod.ProductCategoryID)
		}
		s.products[prod.ID] = prod
		return nil
	})
}

func (r *productRepository) DeleteByID(id uuid.UUID) {
	r.uow.stage(func(s *Store) error {
		delete(s.products, id)
		return nil
	})
}

func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	r.uow.store.mu.Lock()
	defer r.uow.store.mu.Unlock()
	p, ok := r.uow.store.products[id]
	if !ok {
		return nil, nil
	}
	p.Category = entity.ProductCategory{ID: p.ProductCategoryID}
	return &p, nil
}

func (r *productRepository) GetByIDWithDetails(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	r.uow.store.mu.Lock()
	defer r.uow.store.mu.Unlock()
	p, ok := r.uow.store.products[id]
	if !ok {
		return nil, nil
	}
	p.Category = r.uow.store.categoryRef(p.ProductCategoryID)
	return &p, nil
}

func (r *productRepository) GetAll(ctx context.Context) ([]entity.Product, error) {
	r.uow.store.mu.Lock()
	defer r.uow.store.mu.Unlock()
	products := make([]entity.Product, 0, len(r.uow.store.products))
	for _, p := range r.uow.store.products {
		p.Category = entity.ProductCategory{ID: p.ProductCategoryID}
		products = append(products, p)
	}
	return products, nil
}

func (r *productRepository) GetAllWithDetails(ctx context.Context) ([]entity.Product, error) {
	r.uow.store.mu.Lock()
	defer r.uow.store.mu.Unlock()
	products := make([]entity.Product, 0, len(r.uow.store.products))
	for _, p := range r.uow.store.products {
		p.Category = r.uow.store.categoryRef(p.ProductCategoryID)
		products = append(products, p)
	}
	return products, nil
}

type categoryRepository struct {
	uow *unitOfWork
}

var _ storage.ProductCategoryRepository = (*categoryRepository)(nil)

func (r *categoryRepository) Add(c *entity.ProductCategory) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	cat := *c
	r.uow.stage(func(s *Store) error {
		s.categories[cat.ID] = cat
		return nil
	})
}

func (r *categoryRepository) Update(c *entity.ProductCategory) {
	cat := *c
	r.uow.stage(func(s *Store) error {
		if _, ok := s.categories[cat.ID]; !ok {
			return nil
		}
		s.categories[cat.ID] = cat
		return nil
	})
}

func (r *categoryRepository) DeleteByID(id uuid.UUID) {
	r.uow.stage(func(s *Store) error {
		delete(s.categories, id)
		return nil
	})
}

func (r *categoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.ProductCategory, error) {
	r.uow.store.mu.Lock()
	defer r.uow.store.mu.Unlock()
	c, ok := r.uow.store.categories[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *categoryRepository) GetAll(ctx context.Context) ([]entity.ProductCategory, error) {
	r.uow.store.mu.Lock()
	defer r.uow.store.mu.Unlock()
	categories := make([]entity.ProductCategory, 0, len(r.uow.store.categories))
	for _, c := range r.uow.store.categories {
		categories = append(categories, c)
	}
	return categories, nil
}

// categoryRef resolves a category reference the way the SQLite adapter's
// LEFT JOIN does: a missing category yields a bare ID with an empty name.
// Callers must hold the store lock.
func (s *Store) categoryRef(id uuid.UUID) entity.ProductCategory {
	if c, ok := s.categories[id]; ok {
		return c
	}
	return entity.ProductCategory{ID: id}
}

// cloneCustomer deep-copies a customer so staged and returned values do not
// alias store-owned slices.
func cloneCustomer(c *entity.Customer) entity.Customer {
	out := *c
	out.Receipts = make([]entity.Receipt, len(c.Receipts))
	for i, rec := range c.Receipts {
		cp := rec
		cp.Details = append([]entity.ReceiptDetail(nil), rec.Details...)
		out.Receipts[i] = cp
	}
	return out
}
