package trade

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dueOrder(t *testing.T, due float64, date time.Time) *SalesOrder {
	t.Helper()
	customerID := uuid.New()
	order, err := NewSalesOrder(&customerID, TempCustomer{}, OrderLines{
		{ItemID: uuid.New(), Name: "Widget", Quantity: 1, Price: due, Unit: "pcs"},
	}, 0, OrderDiscountAmount, 0, date)
	require.NoError(t, err)
	return order
}

func TestAllocatePayment(t *testing.T) {
	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	t.Run("settles oldest orders first", func(t *testing.T) {
		oldest := dueOrder(t, 50, base)
		middle := dueOrder(t, 30, base.AddDate(0, 0, 1))
		newest := dueOrder(t, 20, base.AddDate(0, 0, 2))

		// Pass targets out of order to prove the allocator sorts by date.
		result := AllocatePayment([]PaymentTarget{newest, oldest, middle}, 60)

		assert.Equal(t, 60.0, result.Applied)
		assert.Equal(t, 0.0, result.Remainder)
		assert.Equal(t, 1, result.Settled)
		assert.Equal(t, 0.0, oldest.Due())
		assert.Equal(t, 20.0, middle.Due())
		assert.Equal(t, 20.0, newest.Due())
	})

	t.Run("excess beyond all dues is reported as remainder", func(t *testing.T) {
		a := dueOrder(t, 40, base)
		b := dueOrder(t, 10, base.AddDate(0, 0, 1))

		result := AllocatePayment([]PaymentTarget{a, b}, 100)

		assert.Equal(t, 50.0, result.Applied)
		assert.Equal(t, 50.0, result.Remainder)
		assert.Equal(t, 2, result.Settled)
		assert.Equal(t, 0.0, a.Due())
		assert.Equal(t, 0.0, b.Due())
	})

	t.Run("same-date orders keep input order", func(t *testing.T) {
		first := dueOrder(t, 30, base)
		second := dueOrder(t, 30, base)

		AllocatePayment([]PaymentTarget{first, second}, 40)

		assert.Equal(t, 0.0, first.Due())
		assert.Equal(t, 20.0, second.Due())
	})

	t.Run("zero amount touches nothing", func(t *testing.T) {
		a := dueOrder(t, 30, base)

		result := AllocatePayment([]PaymentTarget{a}, 0)

		assert.Equal(t, 0.0, result.Applied)
		assert.Equal(t, 30.0, a.Due())
	})

	t.Run("no targets leaves amount unallocated", func(t *testing.T) {
		result := AllocatePayment(nil, 75)
		assert.Equal(t, 0.0, result.Applied)
		assert.Equal(t, 75.0, result.Remainder)
	})
}
