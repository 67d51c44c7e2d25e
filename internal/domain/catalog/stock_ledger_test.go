package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ims/backend/internal/domain/shared"
)

func newTestItem(t *testing.T, name string, stock float64) *Item {
	t.Helper()
	item, err := NewItem(name, stock, nil)
	require.NoError(t, err)
	return item
}

func TestStockLedger_Apply(t *testing.T) {
	t.Run("deducts stock for all lines", func(t *testing.T) {
		a := newTestItem(t, "Widget", 10)
		b := newTestItem(t, "Gadget", 5)
		ledger := NewStockLedger([]*Item{a, b})

		err := ledger.Apply([]StockLine{
			{ItemID: a.ID, Quantity: 4},
			{ItemID: b.ID, Quantity: 5},
		}, StockOut)

		require.NoError(t, err)
		assert.Equal(t, 6.0, a.Stock)
		assert.Equal(t, 0.0, b.Stock)
	})

	t.Run("replenishes stock on inbound", func(t *testing.T) {
		a := newTestItem(t, "Widget", 2)
		ledger := NewStockLedger([]*Item{a})

		err := ledger.Apply([]StockLine{{ItemID: a.ID, Quantity: 8}}, StockIn)

		require.NoError(t, err)
		assert.Equal(t, 10.0, a.Stock)
	})

	t.Run("rejects unknown item without touching others", func(t *testing.T) {
		a := newTestItem(t, "Widget", 10)
		ledger := NewStockLedger([]*Item{a})

		err := ledger.Apply([]StockLine{
			{ItemID: a.ID, Quantity: 4},
			{ItemID: uuid.New(), Quantity: 1},
		}, StockOut)

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "NOT_FOUND", domainErr.Code)
		assert.Equal(t, 10.0, a.Stock)
	})

	t.Run("rejects insufficient stock before mutating any line", func(t *testing.T) {
		a := newTestItem(t, "Widget", 10)
		b := newTestItem(t, "Gadget", 3)
		ledger := NewStockLedger([]*Item{a, b})

		err := ledger.Apply([]StockLine{
			{ItemID: a.ID, Quantity: 4},
			{ItemID: b.ID, Quantity: 5},
		}, StockOut)

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INSUFFICIENT_STOCK", domainErr.Code)
		assert.Equal(t, 10.0, a.Stock)
		assert.Equal(t, 3.0, b.Stock)
	})

	t.Run("inbound ignores stock level", func(t *testing.T) {
		a := newTestItem(t, "Widget", 0)
		ledger := NewStockLedger([]*Item{a})

		err := ledger.Apply([]StockLine{{ItemID: a.ID, Quantity: 100}}, StockIn)

		require.NoError(t, err)
		assert.Equal(t, 100.0, a.Stock)
	})
}

func TestStockLedger_Revert(t *testing.T) {
	t.Run("restores stock consumed by an outbound application", func(t *testing.T) {
		a := newTestItem(t, "Widget", 6)
		ledger := NewStockLedger([]*Item{a})

		ledger.Revert([]StockLine{{ItemID: a.ID, Quantity: 4}}, StockOut)

		assert.Equal(t, 10.0, a.Stock)
	})

	t.Run("skips deleted items", func(t *testing.T) {
		a := newTestItem(t, "Widget", 6)
		ledger := NewStockLedger([]*Item{a})

		ledger.Revert([]StockLine{
			{ItemID: uuid.New(), Quantity: 3},
			{ItemID: a.ID, Quantity: 4},
		}, StockOut)

		assert.Equal(t, 10.0, a.Stock)
	})
}

func TestStockLedger_Touched(t *testing.T) {
	a := newTestItem(t, "Widget", 10)
	b := newTestItem(t, "Gadget", 5)
	ledger := NewStockLedger([]*Item{a, b})

	touched := ledger.Touched([]StockLine{
		{ItemID: a.ID, Quantity: 1},
		{ItemID: a.ID, Quantity: 2},
		{ItemID: b.ID, Quantity: 3},
		{ItemID: uuid.New(), Quantity: 4},
	})

	assert.Len(t, touched, 2)
}
