// Package models defines the transfer models exchanged with callers of the
// service layer.
//
// Models mirror the persisted entities but flatten or derive fields:
//   - Customer carries its person's fields (name, surname, birth date) inline
//   - Product carries the category name alongside the category foreign key
//   - Receipt carries the IDs of its detail lines, not the lines themselves
//
// Models have no behavior; validation lives in the validation package and
// translation to and from entities lives in the mapping package.
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Customer is the caller-facing shape of a customer and its person record.
type Customer struct {
	// ID identifies both the customer and its owned person record.
	ID uuid.UUID `json:"id"`

	// Name is the person's first name. Never empty on a valid model.
	Name string `json:"name" validate:"required"`

	// Surname is the person's last name. Never empty on a valid model.
	Surname string `json:"surname" validate:"required"`

	// BirthDate must fall in [1900, current year] by year.
	BirthDate time.Time `json:"birthDate"`

	// DiscountValue is the customer's personal discount. Never negative.
	DiscountValue decimal.Decimal `json:"discountValue"`

	// ReceiptIDs lists the customer's receipts. Derived on read, ignored on
	// writes.
	ReceiptIDs []uuid.UUID `json:"receiptsIds"`
}

// Product is the caller-facing shape of a product.
type Product struct {
	ID uuid.UUID `json:"id"`

	// ProductCategoryID is the foreign key to the product's category.
	ProductCategoryID uuid.UUID `json:"productCategoryId"`

	// CategoryName is derived from the linked category on reads and used to
	// keep the category record in sync on writes.
	CategoryName string `json:"categoryName"`

	// ProductName is never empty on a valid model.
	ProductName string `json:"productName" validate:"required"`

	// Price is never negative on a valid model.
	Price decimal.Decimal `json:"price"`
}

// ProductCategory is the caller-facing shape of a product category.
type ProductCategory struct {
	ID uuid.UUID `json:"id"`

	// CategoryName is never empty on a valid model.
	CategoryName string `json:"categoryName" validate:"required"`

	// ProductIDs lists products in the category. Derived on read.
	ProductIDs []uuid.UUID `json:"productIds"`
}

// Receipt is the caller-facing shape of a receipt. Detail lines are exposed
// as an ID list derived from the detail collection.
type Receipt struct {
	ID               uuid.UUID   `json:"id"`
	CustomerID       uuid.UUID   `json:"customerId"`
	OperationDate    time.Time   `json:"operationDate"`
	ReceiptDetailIDs []uuid.UUID `json:"receiptDetailsIds"`
}

// FilterSearch narrows product queries. Every field is optional; present
// fields combine with logical AND. It carries no persisted identity.
type FilterSearch struct {
	MinPrice   *decimal.Decimal `json:"minPrice"`
	MaxPrice   *decimal.Decimal `json:"maxPrice"`
	CategoryID *uuid.UUID       `json:"categoryId"`
}
