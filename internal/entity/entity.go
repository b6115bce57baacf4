// Package entity defines the persisted domain records of the market system.
//
// Entities carry stable identity (UUIDs, assigned by the storage layer when
// unset) and hold their related records directly, so a single "with details"
// read returns a usable object graph. Relationships reference IDs rather
// than back-pointers to avoid circular structures.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Person holds the identity data of a customer. A person row is owned by
// exactly one customer and shares that customer's ID.
type Person struct {
	ID        uuid.UUID
	Name      string
	Surname   string
	BirthDate time.Time
}

// Customer is a buyer with a personal discount. The owned Person record is
// keyed by the same ID as the customer itself.
type Customer struct {
	ID            uuid.UUID
	Person        Person
	DiscountValue decimal.Decimal
	Receipts      []Receipt
}

// Receipt is one purchase by a customer, composed of detail lines.
type Receipt struct {
	ID            uuid.UUID
	CustomerID    uuid.UUID
	OperationDate time.Time
	Details       []ReceiptDetail
}

// ReceiptDetail is a single product line on a receipt.
type ReceiptDetail struct {
	ID        uuid.UUID
	ReceiptID uuid.UUID
	ProductID uuid.UUID
	UnitPrice decimal.Decimal
	Quantity  int
}

// Product is a sellable item belonging to exactly one category.
type Product struct {
	ID                uuid.UUID
	ProductCategoryID uuid.UUID
	Category          ProductCategory
	ProductName       string
	Price             decimal.Decimal
}

// ProductCategory groups products.
type ProductCategory struct {
	ID           uuid.UUID
	CategoryName string
}
