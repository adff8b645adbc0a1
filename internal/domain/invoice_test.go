package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestComputeTotals(t *testing.T) {
	t.Parallel()

	items := []LineItem{
		{Description: "Labor", Quantity: 2, UnitPrice: decimal.RequireFromString("75.00")},
		{Description: "Filter", Quantity: 1, UnitPrice: decimal.RequireFromString("50.00")},
	}

	subtotal, total := ComputeTotals(items, decimal.RequireFromString("8.25"))

	assert.True(t, subtotal.Equal(decimal.RequireFromString("200")), "subtotal = %s", subtotal)
	assert.True(t, total.Equal(decimal.RequireFromString("216.5")), "total = %s", total)
}

func TestComputeTotals_Empty(t *testing.T) {
	t.Parallel()

	subtotal, total := ComputeTotals(nil, decimal.NewFromInt(10))

	assert.True(t, subtotal.IsZero())
	assert.True(t, total.IsZero())
}

func TestInvoice_ApplyTotals(t *testing.T) {
	t.Parallel()

	inv := Invoice{
		LineItems: []LineItem{{Quantity: 3, UnitPrice: decimal.NewFromInt(10)}},
		TaxRate:   decimal.Zero,
	}
	inv.ApplyTotals()

	assert.True(t, inv.Subtotal.Equal(decimal.NewFromInt(30)))
	assert.True(t, inv.Total.Equal(decimal.NewFromInt(30)))
}

func TestInventoryItem_IsLowStock_InclusiveBoundary(t *testing.T) {
	t.Parallel()

	assert.True(t, InventoryItem{QuantityInStock: 5, MinimumStockThreshold: 5}.IsLowStock())
	assert.True(t, InventoryItem{QuantityInStock: 4, MinimumStockThreshold: 5}.IsLowStock())
	assert.False(t, InventoryItem{QuantityInStock: 6, MinimumStockThreshold: 5}.IsLowStock())
}
