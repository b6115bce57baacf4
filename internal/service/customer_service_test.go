package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/market/internal/entity"
	"github.com/mmynk/market/internal/models"
	"github.com/mmynk/market/internal/storage/memory"
)

func validCustomerModel() *models.Customer {
	return &models.Customer{
		Name:          "Ann",
		Surname:       "Lee",
		BirthDate:     time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
		DiscountValue: decimal.NewFromInt(5),
	}
}

// seedCustomer persists a customer directly through the store and returns
// its assigned ID.
func seedCustomer(t *testing.T, store *memory.Store, c *entity.Customer) uuid.UUID {
	t.Helper()
	uow := store.UnitOfWork()
	uow.Customers().Add(c)
	require.NoError(t, uow.Save(context.Background()))
	return c.ID
}

func requireDomainErr(t *testing.T, err error, want *entity.Error) {
	t.Helper()
	require.Error(t, err)
	var derr *entity.Error
	require.True(t, errors.As(err, &derr), "expected domain error, got %T: %v", err, err)
	assert.ErrorIs(t, err, want)
}

func TestCustomerServiceAdd(t *testing.T) {
	ctx := context.Background()

	t.Run("valid model commits exactly once", func(t *testing.T) {
		store := memory.New()
		svc := NewCustomerService(store)

		require.NoError(t, svc.Add(ctx, validCustomerModel()))
		assert.Equal(t, 1, store.Saves())
		assert.Equal(t, 1, store.Applied())

		all, err := svc.GetAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, "Ann", all[0].Name)
		assert.Equal(t, "Lee", all[0].Surname)
		assert.True(t, all[0].DiscountValue.Equal(decimal.NewFromInt(5)))
	})

	t.Run("invalid models perform no persistence call", func(t *testing.T) {
		invalid := []*models.Customer{
			nil,
			func() *models.Customer { m := validCustomerModel(); m.Name = ""; return m }(),
			func() *models.Customer { m := validCustomerModel(); m.Surname = ""; return m }(),
			func() *models.Customer {
				m := validCustomerModel()
				m.BirthDate = time.Date(1899, 1, 1, 0, 0, 0, 0, time.UTC)
				return m
			}(),
			func() *models.Customer {
				m := validCustomerModel()
				m.BirthDate = time.Now().AddDate(2, 0, 0)
				return m
			}(),
			func() *models.Customer {
				m := validCustomerModel()
				m.DiscountValue = decimal.NewFromInt(-3)
				return m
			}(),
		}

		store := memory.New()
		svc := NewCustomerService(store)
		for _, m := range invalid {
			requireDomainErr(t, svc.Add(ctx, m), entity.ErrInvalidInput)
		}
		assert.Zero(t, store.Saves(), "validation failures must not touch storage")
	})
}

func TestCustomerServiceDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("missing customer is a domain error", func(t *testing.T) {
		store := memory.New()
		svc := NewCustomerService(store)

		requireDomainErr(t, svc.Delete(ctx, uuid.New()), entity.ErrNotFound)
		assert.Zero(t, store.Saves())
	})

	t.Run("existing customer commits exactly one delete", func(t *testing.T) {
		store := memory.New()
		svc := NewCustomerService(store)
		id := seedCustomer(t, store, &entity.Customer{
			Person: entity.Person{Name: "Bea", Surname: "Cole", BirthDate: time.Date(1985, 5, 5, 0, 0, 0, 0, time.UTC)},
		})
		before := store.Saves()

		require.NoError(t, svc.Delete(ctx, id))
		assert.Equal(t, before+1, store.Saves())

		got, err := svc.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestCustomerServiceGetByID(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	svc := NewCustomerService(store)

	t.Run("absent returns nil without error", func(t *testing.T) {
		got, err := svc.GetByID(ctx, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("present returns the mapped model with receipt IDs", func(t *testing.T) {
		recID := uuid.New()
		id := seedCustomer(t, store, &entity.Customer{
			Person:   entity.Person{Name: "Dan", Surname: "Roe", BirthDate: time.Date(1970, 2, 2, 0, 0, 0, 0, time.UTC)},
			Receipts: []entity.Receipt{{ID: recID, OperationDate: time.Now()}},
		})

		got, err := svc.GetByID(ctx, id)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, id, got.ID)
		assert.Equal(t, []uuid.UUID{recID}, got.ReceiptIDs)
	})
}

func TestCustomerServiceByProduct(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	svc := NewCustomerService(store)

	target := uuid.New()
	other := uuid.New()

	buyer := seedCustomer(t, store, &entity.Customer{
		Person: entity.Person{Name: "Eve", Surname: "Low", BirthDate: time.Date(1992, 7, 7, 0, 0, 0, 0, time.UTC)},
		Receipts: []entity.Receipt{{
			Details: []entity.ReceiptDetail{
				{ProductID: other, Quantity: 1},
				{ProductID: target, Quantity: 2},
			},
		}},
	})
	seedCustomer(t, store, &entity.Customer{
		Person: entity.Person{Name: "Fay", Surname: "May", BirthDate: time.Date(1993, 8, 8, 0, 0, 0, 0, time.UTC)},
		Receipts: []entity.Receipt{{
			Details: []entity.ReceiptDetail{{ProductID: other, Quantity: 3}},
		}},
	})
	seedCustomer(t, store, &entity.Customer{
		Person: entity.Person{Name: "Gus", Surname: "Noy", BirthDate: time.Date(1994, 9, 9, 0, 0, 0, 0, time.UTC)},
	})

	got, err := svc.ByProduct(ctx, target)
	require.NoError(t, err)
	require.Len(t, got, 1, "only the customer whose receipt references the product matches")
	assert.Equal(t, buyer, got[0].ID)

	got, err = svc.ByProduct(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCustomerServiceUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid model performs no persistence call", func(t *testing.T) {
		store := memory.New()
		svc := NewCustomerService(store)
		m := validCustomerModel()
		m.Surname = ""
		requireDomainErr(t, svc.Update(ctx, m), entity.ErrInvalidInput)
		assert.Zero(t, store.Saves())
	})

	t.Run("re-attaches person identity and commits once", func(t *testing.T) {
		store := memory.New()
		svc := NewCustomerService(store)
		id := seedCustomer(t, store, &entity.Customer{
			Person: entity.Person{Name: "Old", Surname: "Name", BirthDate: time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC)},
		})
		before := store.Saves()

		m := validCustomerModel()
		m.ID = id
		m.Name = "New"
		m.Surname = "Name"
		require.NoError(t, svc.Update(ctx, m))
		assert.Equal(t, before+1, store.Saves())

		got, err := svc.GetByID(ctx, id)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "New", got.Name)
		assert.Equal(t, id, got.ID)
	})
}

func TestCustomerServiceReceipts(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	svc := NewCustomerService(store)

	t.Run("missing customer is a domain error", func(t *testing.T) {
		_, err := svc.Receipts(ctx, uuid.New())
		requireDomainErr(t, err, entity.ErrNotFound)
	})

	t.Run("details project to ID lists", func(t *testing.T) {
		detID := uuid.New()
		id := seedCustomer(t, store, &entity.Customer{
			Person: entity.Person{Name: "Hal", Surname: "Orr", BirthDate: time.Date(1975, 3, 3, 0, 0, 0, 0, time.UTC)},
			Receipts: []entity.Receipt{{
				Details: []entity.ReceiptDetail{{ID: detID, ProductID: uuid.New(), Quantity: 1}},
			}},
		})

		receipts, err := svc.Receipts(ctx, id)
		require.NoError(t, err)
		require.Len(t, receipts, 1)
		assert.Equal(t, []uuid.UUID{detID}, receipts[0].ReceiptDetailIDs)
		assert.Equal(t, id, receipts[0].CustomerID)
	})
}

func TestCustomerServicePropagatesStorageFailure(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	store.SaveErr = errors.New("disk full")
	svc := NewCustomerService(store)

	err := svc.Add(ctx, validCustomerModel())
	require.Error(t, err)
	var derr *entity.Error
	assert.False(t, errors.As(err, &derr), "storage failures must propagate unchanged, not as domain errors")
}
