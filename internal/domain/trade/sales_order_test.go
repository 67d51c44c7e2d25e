package trade

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSalesOrder(t *testing.T) {
	customerID := uuid.New()
	lines := OrderLines{
		{ItemID: uuid.New(), Name: "Widget", Quantity: 2, Price: 50, Unit: "pcs"},
		{ItemID: uuid.New(), Name: "Gadget", Quantity: 1, Price: 33, Unit: "pcs"},
	}

	t.Run("amount discount subtracted literally", func(t *testing.T) {
		order, err := NewSalesOrder(&customerID, TempCustomer{}, lines, 13, OrderDiscountAmount, 0, time.Now())
		require.NoError(t, err)
		assert.Equal(t, 120.0, order.Total)
		assert.Equal(t, 120.0, order.Due())
	})

	t.Run("percent discount rounded to nearest unit", func(t *testing.T) {
		// 133 * 7.5% = 9.975, rounds to 10
		order, err := NewSalesOrder(&customerID, TempCustomer{}, lines, 7.5, OrderDiscountPercent, 0, time.Now())
		require.NoError(t, err)
		assert.Equal(t, 123.0, order.Total)
	})

	t.Run("paid reduces due", func(t *testing.T) {
		order, err := NewSalesOrder(&customerID, TempCustomer{}, lines, 0, OrderDiscountAmount, 100, time.Now())
		require.NoError(t, err)
		assert.Equal(t, 33.0, order.Due())
	})

	t.Run("temp customer sale keeps the snapshot", func(t *testing.T) {
		order, err := NewSalesOrder(nil, TempCustomer{Name: "Walk-in", Mobile: "01711111111"}, lines, 0, OrderDiscountAmount, 133, time.Now())
		require.NoError(t, err)
		assert.True(t, order.IsTempSale())
		assert.Equal(t, "Walk-in", order.TempCustomer.Name)
		assert.Equal(t, "01711111111", order.TempCustomer.Mobile)
	})

	t.Run("requires exactly one buyer identity", func(t *testing.T) {
		_, err := NewSalesOrder(nil, TempCustomer{}, lines, 0, OrderDiscountAmount, 0, time.Now())
		assert.Error(t, err)

		_, err = NewSalesOrder(&customerID, TempCustomer{Name: "Walk-in"}, lines, 0, OrderDiscountAmount, 0, time.Now())
		assert.Error(t, err)
	})

	t.Run("rejects empty lines", func(t *testing.T) {
		_, err := NewSalesOrder(&customerID, TempCustomer{}, OrderLines{}, 0, OrderDiscountAmount, 0, time.Now())
		assert.Error(t, err)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		bad := OrderLines{{ItemID: uuid.New(), Name: "Widget", Quantity: 0, Price: 10}}
		_, err := NewSalesOrder(&customerID, TempCustomer{}, bad, 0, OrderDiscountAmount, 0, time.Now())
		assert.Error(t, err)
	})
}

func TestSalesOrder_ApplyPayment(t *testing.T) {
	customerID := uuid.New()
	order, err := NewSalesOrder(&customerID, TempCustomer{}, OrderLines{
		{ItemID: uuid.New(), Name: "Widget", Quantity: 1, Price: 100, Unit: "pcs"},
	}, 0, OrderDiscountAmount, 0, time.Now())
	require.NoError(t, err)

	assert.Equal(t, 60.0, order.ApplyPayment(60))
	assert.Equal(t, 40.0, order.Due())

	// Over-payment absorbs only the remaining due.
	assert.Equal(t, 40.0, order.ApplyPayment(100))
	assert.Equal(t, 0.0, order.Due())
	assert.Equal(t, 0.0, order.ApplyPayment(10))
}

func TestSalesOrder_ApplyPayment_SettlesExactly(t *testing.T) {
	// Fractional money values where total-paid carries binary float error.
	// Paying off the reported due must still land on exactly zero, or the
	// order lingers in the unpaid set with a residual due.
	customerID := uuid.New()
	order, err := NewSalesOrder(&customerID, TempCustomer{}, OrderLines{
		{ItemID: uuid.New(), Name: "Widget", Quantity: 1, Price: 62814.20, Unit: "pcs"},
	}, 0, OrderDiscountAmount, 21202.8717, time.Now())
	require.NoError(t, err)

	absorbed := order.ApplyPayment(order.Due())
	assert.Zero(t, order.Due())
	assert.Equal(t, order.Total, order.Paid)
	assert.InDelta(t, 62814.20-21202.8717, absorbed, 1e-6)
}

func TestPurchaseOrder_ApplyPayment_SettlesExactly(t *testing.T) {
	vendorID := uuid.New()
	order, err := NewPurchaseOrder(vendorID, PurchaseLines{
		{ItemID: uuid.New(), Name: "Widget", Quantity: 1, BuyingPrice: 62814.20},
	}, 0, OrderDiscountAmount, 21202.8717, time.Now())
	require.NoError(t, err)

	order.ApplyPayment(order.DueAmount())
	assert.Zero(t, order.DueAmount())
	assert.Equal(t, order.TotalBuyAmount, order.PayAmount)
}

func TestNewPurchaseOrder(t *testing.T) {
	vendorID := uuid.New()
	lines := PurchaseLines{
		{ItemID: uuid.New(), Name: "Widget", Quantity: 10, BuyingPrice: 8},
	}

	t.Run("computes totals and due", func(t *testing.T) {
		order, err := NewPurchaseOrder(vendorID, lines, 5, OrderDiscountAmount, 30, time.Now())
		require.NoError(t, err)
		assert.Equal(t, 80.0, order.Subtotal)
		assert.Equal(t, 75.0, order.TotalBuyAmount)
		assert.Equal(t, 45.0, order.DueAmount())
	})

	t.Run("rejects pay amount above the total", func(t *testing.T) {
		_, err := NewPurchaseOrder(vendorID, lines, 0, OrderDiscountAmount, 100, time.Now())
		assert.Error(t, err)
	})

	t.Run("requires a vendor", func(t *testing.T) {
		_, err := NewPurchaseOrder(uuid.Nil, lines, 0, OrderDiscountAmount, 0, time.Now())
		assert.Error(t, err)
	})
}
