// Package mapping translates between persisted entities and transfer models.
//
// Translation is explicit and bidirectional per entity/model pair. Derived
// fields (a receipt's detail-ID list, a customer's receipt-ID list, a
// product's category name) are projected on the entity→model direction and
// have no inverse: mapping a model back to an entity rebuilds relationships
// from foreign keys only.
package mapping

import (
	"github.com/mmynk/market/internal/entity"
	"github.com/mmynk/market/internal/models"
)

// CustomerToModel flattens a customer and its person record into one model.
func CustomerToModel(c *entity.Customer) *models.Customer {
	m := &models.Customer{
		ID:            c.ID,
		Name:          c.Person.Name,
		Surname:       c.Person.Surname,
		BirthDate:     c.Person.BirthDate,
		DiscountValue: c.DiscountValue,
	}
	for _, r := range c.Receipts {
		m.ReceiptIDs = append(m.ReceiptIDs, r.ID)
	}
	return m
}

// CustomerFromModel rebuilds a customer and its owned person from a model.
// The nested person receives the person fields but not an ID of its own;
// operations that need the identity linkage re-attach it from the model
// (customer and person share one ID).
func CustomerFromModel(m *models.Customer) *entity.Customer {
	return &entity.Customer{
		ID: m.ID,
		Person: entity.Person{
			Name:      m.Name,
			Surname:   m.Surname,
			BirthDate: m.BirthDate,
		},
		DiscountValue: m.DiscountValue,
	}
}

// ProductToModel projects a product and its linked category into one model.
func ProductToModel(p *entity.Product) *models.Product {
	return &models.Product{
		ID:                p.ID,
		ProductCategoryID: p.ProductCategoryID,
		CategoryName:      p.Category.CategoryName,
		ProductName:       p.ProductName,
		Price:             p.Price,
	}
}

// ProductFromModel rebuilds a product from a model. The category reference
// is reconstructed from the model's foreign key and category name.
func ProductFromModel(m *models.Product) *entity.Product {
	return &entity.Product{
		ID:                m.ID,
		ProductCategoryID: m.ProductCategoryID,
		Category: entity.ProductCategory{
			ID:           m.ProductCategoryID,
			CategoryName: m.CategoryName,
		},
		ProductName: m.ProductName,
		Price:       m.Price,
	}
}

// CategoryToModel converts a category. The product-ID list is a projection
// the category entity does not carry; callers that have the products pass
// them in via CategoryToModelWithProducts.
func CategoryToModel(c *entity.ProductCategory) *models.ProductCategory {
	return &models.ProductCategory{
		ID:           c.ID,
		CategoryName: c.CategoryName,
	}
}

// CategoryToModelWithProducts converts a category and fills the derived
// product-ID list from the given products (only those in the category).
func CategoryToModelWithProducts(c *entity.ProductCategory, products []entity.Product) *models.ProductCategory {
	m := CategoryToModel(c)
	for _, p := range products {
		if p.ProductCategoryID == c.ID {
			m.ProductIDs = append(m.ProductIDs, p.ID)
		}
	}
	return m
}

// CategoryFromModel rebuilds a category from a model.
func CategoryFromModel(m *models.ProductCategory) *entity.ProductCategory {
	return &entity.ProductCategory{
		ID:           m.ID,
		CategoryName: m.CategoryName,
	}
}

// ReceiptToModel converts a receipt, deriving the detail-ID list from the
// detail collection.
func ReceiptToModel(r *entity.Receipt) *models.Receipt {
	m := &models.Receipt{
		ID:            r.ID,
		CustomerID:    r.CustomerID,
		OperationDate: r.OperationDate,
	}
	for _, d := range r.Details {
		m.ReceiptDetailIDs = append(m.ReceiptDetailIDs, d.ID)
	}
	return m
}

// ReceiptFromModel rebuilds a receipt from a model. Detail lines cannot be
// reconstructed from their IDs alone, so only the ID references survive.
func ReceiptFromModel(m *models.Receipt) *entity.Receipt {
	r := &entity.Receipt{
		ID:            m.ID,
		CustomerID:    m.CustomerID,
		OperationDate: m.OperationDate,
	}
	for _, id := range m.ReceiptDetailIDs {
		r.Details = append(r.Details, entity.ReceiptDetail{ID: id, ReceiptID: m.ID})
	}
	return r
}
