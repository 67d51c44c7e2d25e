package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewItem(t *testing.T) {
	t.Run("creates item with defaults", func(t *testing.T) {
		item, err := NewItem("Widget", 10, nil)
		require.NoError(t, err)
		assert.Equal(t, "Widget", item.Name)
		assert.Equal(t, 10.0, item.Stock)
		assert.Equal(t, DefaultMeasurementType, item.MeasurementType)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewItem("", 10, nil)
		assert.Error(t, err)
	})

	t.Run("rejects negative stock", func(t *testing.T) {
		_, err := NewItem("Widget", -1, nil)
		assert.Error(t, err)
	})
}

func TestItem_PriceBase(t *testing.T) {
	item, err := NewItem("Widget", 10, nil)
	require.NoError(t, err)

	require.NoError(t, item.SetPrices(40, 80, 100))
	assert.Equal(t, 100.0, item.PriceBase())

	require.NoError(t, item.SetPrices(40, 80, 0))
	assert.Equal(t, 80.0, item.PriceBase())
}

func TestItem_ApplySellingPrice(t *testing.T) {
	item, err := NewItem("Widget", 10, nil)
	require.NoError(t, err)
	require.NoError(t, item.SetPrices(40, 80, 100))

	assert.True(t, item.ApplySellingPrice(70))
	assert.Equal(t, 70.0, item.SellingPrice)
	assert.False(t, item.ApplySellingPrice(70))
}

func TestItem_SetMeasurementType(t *testing.T) {
	item, err := NewItem("Widget", 10, nil)
	require.NoError(t, err)

	item.SetMeasurementType("kg")
	assert.Equal(t, "kg", item.MeasurementType)

	item.SetMeasurementType("")
	assert.Equal(t, DefaultMeasurementType, item.MeasurementType)
}
