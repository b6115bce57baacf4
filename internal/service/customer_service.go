// Package service implements the transactional service layer: validation,
// entity↔model translation, and unit-of-work orchestration for each use
// case. Services hold no mutable state of their own and are safe for
// concurrent use; every operation runs against its own unit of work.
package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/mmynk/market/internal/entity"
	"github.com/mmynk/market/internal/mapping"
	"github.com/mmynk/market/internal/models"
	"github.com/mmynk/market/internal/storage"
	"github.com/mmynk/market/internal/validation"
)

// CustomerService handles customer-related business operations.
type CustomerService struct {
	store storage.Store
}

// NewCustomerService creates a new CustomerService over the given storage
// backend.
func NewCustomerService(store storage.Store) *CustomerService {
	return &CustomerService{store: store}
}

// Add validates the model, stages a customer (and person) create, and
// commits once. Validation failure means no persistence call happens.
func (s *CustomerService) Add(ctx context.Context, m *models.Customer) error {
	if err := validation.Customer(m); err != nil {
		return err
	}

	customer := mapping.CustomerFromModel(m)

	uow := s.store.UnitOfWork()
	uow.Customers().Add(customer)
	if err := uow.Save(ctx); err != nil {
		slog.Error("customer add failed", "error", err)
		return err
	}
	return nil
}

// Delete removes a customer by ID. A missing customer is a caller mistake
// and yields the domain error.
func (s *CustomerService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.store.UnitOfWork()

	customer, err := uow.Customers().GetByID(ctx, id)
	if err != nil {
		return err
	}
	if customer == nil {
		return entity.NotFound("customer does not exist")
	}

	uow.Customers().DeleteByID(id)
	if err := uow.Save(ctx); err != nil {
		slog.Error("customer delete failed", "customer_id", id, "error", err)
		return err
	}
	return nil
}

// GetAll returns every customer with related data, mapped to models. Order
// follows the repository and is not otherwise guaranteed.
func (s *CustomerService) GetAll(ctx context.Context) ([]models.Customer, error) {
	customers, err := s.store.UnitOfWork().Customers().GetAllWithDetails(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]models.Customer, 0, len(customers))
	for i := range customers {
		out = append(out, *mapping.CustomerToModel(&customers[i]))
	}
	return out, nil
}

// GetByID returns the mapped customer, or (nil, nil) when absent. Unlike
// Delete, absence on this read path is not an error; callers distinguish
// "not found" themselves.
func (s *CustomerService) GetByID(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	customer, err := s.store.UnitOfWork().Customers().GetByIDWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, nil
	}
	return mapping.CustomerToModel(customer), nil
}

// ByProduct returns the customers having at least one receipt with at least
// one detail line referencing the given product.
func (s *CustomerService) ByProduct(ctx context.Context, productID uuid.UUID) ([]models.Customer, error) {
	customers, err := s.store.UnitOfWork().Customers().GetAllWithDetails(ctx)
	if err != nil {
		return nil, err
	}

	var out []models.Customer
	for i := range customers {
		if customerBought(&customers[i], productID) {
			out = append(out, *mapping.CustomerToModel(&customers[i]))
		}
	}
	return out, nil
}

// Update validates the model, maps it, re-attaches the owned person's ID
// from the model (the mapped entity's nested person does not otherwise carry
// it; customer and person share one key), stages the update and commits.
func (s *CustomerService) Update(ctx context.Context, m *models.Customer) error {
	if err := validation.Customer(m); err != nil {
		return err
	}

	customer := mapping.CustomerFromModel(m)
	customer.Person.ID = m.ID

	uow := s.store.UnitOfWork()
	uow.Customers().Update(customer)
	if err := uow.Save(ctx); err != nil {
		slog.Error("customer update failed", "customer_id", m.ID, "error", err)
		return err
	}
	return nil
}

// Receipts returns the customer's receipts with their detail lines projected
// to ID lists. A missing customer yields the domain error.
func (s *CustomerService) Receipts(ctx context.Context, customerID uuid.UUID) ([]models.Receipt, error) {
	customer, err := s.store.UnitOfWork().Customers().GetByIDWithDetails(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, entity.NotFound("customer does not exist")
	}

	out := make([]models.Receipt, 0, len(customer.Receipts))
	for i := range customer.Receipts {
		out = append(out, *mapping.ReceiptToModel(&customer.Receipts[i]))
	}
	return out, nil
}

// customerBought reports whether any of the customer's receipts contains a
// detail line for the given product.
func customerBought(c *entity.Customer, productID uuid.UUID) bool {
	for _, rec := range c.Receipts {
		for _, det := range rec.Details {
			if det.ProductID == productID {
				return true
			}
		}
	}
	return false
}
