package validation

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/market/internal/entity"
	"github.com/mmynk/market/internal/models"
)

func validCustomer() *models.Customer {
	return &models.Customer{
		Name:          "Ann",
		Surname:       "Lee",
		BirthDate:     time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
		DiscountValue: decimal.NewFromInt(5),
	}
}

func TestCustomer(t *testing.T) {
	t.Run("valid model passes", func(t *testing.T) {
		require.NoError(t, Customer(validCustomer()))
	})

	tests := []struct {
		name   string
		mutate func(*models.Customer)
	}{
		{"empty name", func(m *models.Customer) { m.Name = "" }},
		{"empty surname", func(m *models.Customer) { m.Surname = "" }},
		{"birth year before 1900", func(m *models.Customer) {
			m.BirthDate = time.Date(1899, 12, 31, 0, 0, 0, 0, time.UTC)
		}},
		{"birth year in the future", func(m *models.Customer) {
			m.BirthDate = time.Now().AddDate(1, 0, 0)
		}},
		{"negative discount", func(m *models.Customer) {
			m.DiscountValue = decimal.NewFromInt(-1)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := validCustomer()
			tt.mutate(m)
			assertDomainError(t, Customer(m))
		})
	}

	t.Run("nil model", func(t *testing.T) {
		assertDomainError(t, Customer(nil))
	})

	t.Run("boundary years pass", func(t *testing.T) {
		m := validCustomer()
		m.BirthDate = time.Date(1900, 6, 15, 0, 0, 0, 0, time.UTC)
		require.NoError(t, Customer(m))

		m.BirthDate = time.Date(time.Now().Year(), 1, 1, 0, 0, 0, 0, time.UTC)
		require.NoError(t, Customer(m))
	})

	t.Run("zero discount passes", func(t *testing.T) {
		m := validCustomer()
		m.DiscountValue = decimal.Zero
		require.NoError(t, Customer(m))
	})
}

func TestProduct(t *testing.T) {
	valid := func() *models.Product {
		return &models.Product{ProductName: "Milk", Price: decimal.NewFromInt(3)}
	}

	t.Run("valid model passes", func(t *testing.T) {
		require.NoError(t, Product(valid()))
	})

	t.Run("nil model", func(t *testing.T) {
		assertDomainError(t, Product(nil))
	})

	t.Run("empty name", func(t *testing.T) {
		m := valid()
		m.ProductName = ""
		assertDomainError(t, Product(m))
	})

	t.Run("negative price", func(t *testing.T) {
		m := valid()
		m.Price = decimal.NewFromFloat(-0.01)
		assertDomainError(t, Product(m))
	})

	t.Run("zero price passes", func(t *testing.T) {
		m := valid()
		m.Price = decimal.Zero
		require.NoError(t, Product(m))
	})
}

func TestProductCategory(t *testing.T) {
	t.Run("valid model passes", func(t *testing.T) {
		require.NoError(t, ProductCategory(&models.ProductCategory{CategoryName: "Dairy"}))
	})

	t.Run("nil model", func(t *testing.T) {
		assertDomainError(t, ProductCategory(nil))
	})

	t.Run("empty name", func(t *testing.T) {
		assertDomainError(t, ProductCategory(&models.ProductCategory{}))
	})
}

// assertDomainError requires err to be the domain error kind with the
// INVALID_INPUT code.
func assertDomainError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var derr *entity.Error
	require.True(t, errors.As(err, &derr), "expected domain error, got %T", err)
	assert.Equal(t, entity.CodeInvalidInput, derr.Code)
}
