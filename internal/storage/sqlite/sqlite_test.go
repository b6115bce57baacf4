package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mmynk/market/internal/entity"
)

func TestSQLiteStore(t *testing.T) {
	// Create temp directory for test database
	tempDir, err := os.MkdirTemp("", "market-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	dbPath := filepath.Join(tempDir, "test.db")
	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer store.Close()

	ctx := context.Background()

	// Shared fixtures, built up across subtests.
	category := &entity.ProductCategory{CategoryName: "Dairy"}
	product := &entity.Product{ProductName: "Milk", Price: decimal.NewFromFloat(3.50)}

	t.Run("Add category generates ID", func(t *testing.T) {
		uow := store.UnitOfWork()
		uow.Categories().Add(category)
		if err := uow.Save(ctx); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		if category.ID == uuid.Nil {
			t.Error("Expected category ID to be generated")
		}

		got, err := store.UnitOfWork().Categories().GetByID(ctx, category.ID)
		if err != nil {
			t.Fatalf("GetByID failed: %v", err)
		}
		if got == nil {
			t.Fatal("Expected category, got nil")
		}
		if got.CategoryName != "Dairy" {
			t.Errorf("Name mismatch: got %s, want Dairy", got.CategoryName)
		}
	})

	t.Run("Add product and read it back with its category", func(t *testing.T) {
		product.ProductCategoryID = category.ID
		uow := store.UnitOfWork()
		uow.Products().Add(product)
		if err := uow.Save(ctx); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		if product.ID == uuid.Nil {
			t.Error("Expected product ID to be generated")
		}

		got, err := store.UnitOfWork().Products().GetByIDWithDetails(ctx, product.ID)
		if err != nil {
			t.Fatalf("GetByIDWithDetails failed: %v", err)
		}
		if got == nil {
			t.Fatal("Expected product, got nil")
		}
		if got.ProductName != "Milk" {
			t.Errorf("Name mismatch: got %s, want Milk", got.ProductName)
		}
		if !got.Price.Equal(product.Price) {
			t.Errorf("Price mismatch: got %s, want %s", got.Price, product.Price)
		}
		if got.Category.CategoryName != "Dairy" {
			t.Errorf("Category name mismatch: got %s, want Dairy", got.Category.CategoryName)
		}

		// Without details the category name stays empty.
		bare, err := store.UnitOfWork().Products().GetByID(ctx, product.ID)
		if err != nil {
			t.Fatalf("GetByID failed: %v", err)
		}
		if bare.Category.CategoryName != "" {
			t.Errorf("Expected empty category name, got %s", bare.Category.CategoryName)
		}
	})

	t.Run("Add customer with receipts round-trips", func(t *testing.T) {
		customer := &entity.Customer{
			Person: entity.Person{
				Name:      "Ann",
				Surname:   "Lee",
				BirthDate: time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
			},
			DiscountValue: decimal.NewFromInt(5),
			Receipts: []entity.Receipt{{
				OperationDate: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
				Details: []entity.ReceiptDetail{
					{ProductID: product.ID, UnitPrice: decimal.NewFromFloat(3.50), Quantity: 2},
				},
			}},
		}

		uow := store.UnitOfWork()
		uow.Customers().Add(customer)
		if err := uow.Save(ctx); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		if customer.ID == uuid.Nil {
			t.Error("Expected customer ID to be generated")
		}
		if customer.Person.ID != customer.ID {
			t.Error("Expected person to share the customer ID")
		}

		got, err := store.UnitOfWork().Customers().GetByIDWithDetails(ctx, customer.ID)
		if err != nil {
			t.Fatalf("GetByIDWithDetails failed: %v", err)
		}
		if got == nil {
			t.Fatal("Expected customer, got nil")
		}
		if got.Person.Name != "Ann" || got.Person.Surname != "Lee" {
			t.Errorf("Person mismatch: got %s %s", got.Person.Name, got.Person.Surname)
		}
		if !got.Person.BirthDate.Equal(customer.Person.BirthDate) {
			t.Errorf("Birth date mismatch: got %v, want %v", got.Person.BirthDate, customer.Person.BirthDate)
		}
		if got.Person.BirthDate.Location() != time.UTC {
			t.Errorf("Expected birth date in UTC, got %v", got.Person.BirthDate.Location())
		}
		if !got.DiscountValue.Equal(customer.DiscountValue) {
			t.Errorf("Discount mismatch: got %s, want %s", got.DiscountValue, customer.DiscountValue)
		}
		if len(got.Receipts) != 1 {
			t.Fatalf("Receipts count mismatch: got %d, want 1", len(got.Receipts))
		}
		rec := got.Receipts[0]
		if rec.CustomerID != customer.ID {
			t.Errorf("Receipt customer mismatch: got %s, want %s", rec.CustomerID, customer.ID)
		}
		if !rec.OperationDate.Equal(customer.Receipts[0].OperationDate) {
			t.Errorf("Operation date mismatch: got %v, want %v", rec.OperationDate, customer.Receipts[0].OperationDate)
		}
		if rec.OperationDate.Location() != time.UTC {
			t.Errorf("Expected operation date in UTC, got %v", rec.OperationDate.Location())
		}
		if len(rec.Details) != 1 {
			t.Fatalf("Details count mismatch: got %d, want 1", len(rec.Details))
		}
		det := rec.Details[0]
		if det.ProductID != product.ID {
			t.Errorf("Detail product mismatch: got %s, want %s", det.ProductID, product.ID)
		}
		if det.Quantity != 2 {
			t.Errorf("Quantity mismatch: got %d, want 2", det.Quantity)
		}
		if !det.UnitPrice.Equal(decimal.NewFromFloat(3.50)) {
			t.Errorf("Unit price mismatch: got %s", det.UnitPrice)
		}
	})

	t.Run("Update customer rewrites person and discount", func(t *testing.T) {
		customer := &entity.Customer{
			Person: entity.Person{
				Name:      "Bea",
				Surname:   "Cole",
				BirthDate: time.Date(1985, 5, 5, 0, 0, 0, 0, time.UTC),
			},
			DiscountValue: decimal.NewFromInt(0),
		}
		uow := store.UnitOfWork()
		uow.Customers().Add(customer)
		if err := uow.Save(ctx); err != nil {
			t.Fatalf("Save failed: %v", err)
		}

		customer.Person.Name = "Beatrice"
		customer.DiscountValue = decimal.NewFromInt(10)
		uow = store.UnitOfWork()
		uow.Customers().Update(customer)
		if err := uow.Save(ctx); err != nil {
			t.Fatalf("Save failed: %v", err)
		}

		got, err := store.UnitOfWork().Customers().GetByID(ctx, customer.ID)
		if err != nil {
			t.Fatalf("GetByID failed: %v", err)
		}
		if got.Person.Name != "Beatrice" {
			t.Errorf("Name mismatch after update: got %s", got.Person.Name)
		}
		if !got.DiscountValue.Equal(decimal.NewFromInt(10)) {
			t.Errorf("Discount mismatch after update: got %s", got.DiscountValue)
		}
	})

	t.Run("Delete customer cascades to receipts", func(t *testing.T) {
		customer := &entity.Customer{
			Person: entity.Person{
				Name:      "Dan",
				Surname:   "Roe",
				BirthDate: time.Date(1970, 2, 2, 0, 0, 0, 0, time.UTC),
			},
			Receipts: []entity.Receipt{{
				OperationDate: time.Now(),
				Details: []entity.ReceiptDetail{
					{ProductID: product.ID, UnitPrice: decimal.NewFromInt(3), Quantity: 1},
				},
			}},
		}
		uow := store.UnitOfWork()
		uow.Customers().Add(customer)
		if err := uow.Save(ctx); err != nil {
			t.Fatalf("Save failed: %v", err)
		}

		uow = store.UnitOfWork()
		uow.Customers().DeleteByID(customer.ID)
		if err := uow.Save(ctx); err != nil {
			t.Fatalf("Save failed: %v", err)
		}

		got, err := store.UnitOfWork().Customers().GetByID(ctx, customer.ID)
		if err != nil {
			t.Fatalf("GetByID failed: %v", err)
		}
		if got != nil {
			t.Error("Expected customer to be gone")
		}

		var count int
		if err := store.db.QueryRow(
			"SELECT COUNT(*) FROM receipts WHERE customer_id = ?", customer.ID.String(),
		).Scan(&count); err != nil {
			t.Fatalf("Count query failed: %v", err)
		}
		if count != 0 {
			t.Errorf("Expected receipts to cascade, %d left", count)
		}
	})

	t.Run("Absent rows read as nil without error", func(t *testing.T) {
		uow := store.UnitOfWork()
		if c, err := uow.Customers().GetByID(ctx, uuid.New()); err != nil || c != nil {
			t.Errorf("Customer: got (%v, %v), want (nil, nil)", c, err)
		}
		if p, err := uow.Products().GetByIDWithDetails(ctx, uuid.New()); err != nil || p != nil {
			t.Errorf("Product: got (%v, %v), want (nil, nil)", p, err)
		}
		if c, err := uow.Categories().GetByID(ctx, uuid.New()); err != nil || c != nil {
			t.Errorf("Category: got (%v, %v), want (nil, nil)", c, err)
		}
	})

	t.Run("Update of absent category is a no-op", func(t *testing.T) {
		uow := store.UnitOfWork()
		uow.Categories().Update(&entity.ProductCategory{ID: uuid.New(), CategoryName: "Ghost"})
		if err := uow.Save(ctx); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	})

	t.Run("Staged operations fail together", func(t *testing.T) {
		countProducts := func() int {
			var n int
			if err := store.db.QueryRow("SELECT COUNT(*) FROM products").Scan(&n); err != nil {
				t.Fatalf("Count query failed: %v", err)
			}
			return n
		}
		before := countProducts()

		// The second insert violates the category foreign key, so the first
		// must roll back with it.
		uow := store.UnitOfWork()
		uow.Products().Add(&entity.Product{
			ProductName:       "Butter",
			Price:             decimal.NewFromInt(4),
			ProductCategoryID: category.ID,
		})
		uow.Products().Add(&entity.Product{
			ProductName:       "Phantom",
			Price:             decimal.NewFromInt(1),
			ProductCategoryID: uuid.New(),
		})
		if err := uow.Save(ctx); err == nil {
			t.Fatal("Expected Save to fail on foreign key violation")
		}

		if got := countProducts(); got != before {
			t.Errorf("Expected rollback, product count went %d -> %d", before, got)
		}
	})

	t.Run("Save with nothing staged is a no-op", func(t *testing.T) {
		if err := store.UnitOfWork().Save(ctx); err != nil {
			t.Errorf("Empty Save failed: %v", err)
		}
	})
}
