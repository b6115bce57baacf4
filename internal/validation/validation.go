// Package validation checks domain invariants on incoming transfer models
// before any translation or persistence happens. All functions are pure: no
// I/O, no side effects. Every failure is the domain error kind with code
// INVALID_INPUT.
package validation

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/mmynk/market/internal/entity"
	"github.com/mmynk/market/internal/models"
)

// minBirthYear is the oldest accepted birth year for a customer.
const minBirthYear = 1900

var validate = validator.New(validator.WithRequiredStructEnabled())

// Customer rejects a nil model, empty name or surname, a birth year outside
// [1900, current year], and a negative discount.
func Customer(m *models.Customer) error {
	if m == nil {
		return entity.Invalid("customer model is required")
	}
	if err := validate.Struct(m); err != nil {
		return entity.Invalid("customer name and surname are required")
	}
	if year := m.BirthDate.Year(); year < minBirthYear || year > time.Now().Year() {
		return entity.Invalid("customer birth year is out of range")
	}
	if m.DiscountValue.IsNegative() {
		return entity.Invalid("customer discount cannot be negative")
	}
	return nil
}

// Product rejects a nil model, a negative price, and an empty product name.
func Product(m *models.Product) error {
	if m == nil {
		return entity.Invalid("product model is required")
	}
	if err := validate.Struct(m); err != nil {
		return entity.Invalid("product name is required")
	}
	if m.Price.IsNegative() {
		return entity.Invalid("product price cannot be negative")
	}
	return nil
}

// ProductCategory rejects a nil model and an empty category name.
func ProductCategory(m *models.ProductCategory) error {
	if m == nil {
		return entity.Invalid("product category model is required")
	}
	if err := validate.Struct(m); err != nil {
		return entity.Invalid("category name is required")
	}
	return nil
}
