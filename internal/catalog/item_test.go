package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arbora-home/cart-api/internal/catalog"
	"github.com/arbora-home/cart-api/internal/pricing"
)

func TestNormalizeZeroStockForcesOutOfStock(t *testing.T) {
	item := catalog.Item{ID: 1, InStock: true, StockQty: 0}
	item.Normalize()
	require.False(t, item.InStock)
}

func TestNormalizeClampsNegatives(t *testing.T) {
	item := catalog.Item{ID: 1, InStock: true, StockQty: -4, Price: -100}
	item.Normalize()
	require.Equal(t, 0, item.StockQty)
	require.False(t, item.InStock)
	require.Equal(t, pricing.Money(0), item.Price)
}

func TestDiscountRequiresHigherOriginalPrice(t *testing.T) {
	original := pricing.Money(120)
	item := catalog.Item{ID: 1, Price: 100, OriginalPrice: &original}
	require.Equal(t, pricing.Money(20), item.Discount())

	lower := pricing.Money(90)
	item.OriginalPrice = &lower
	require.Equal(t, pricing.Money(0), item.Discount())

	item.OriginalPrice = nil
	require.Equal(t, pricing.Money(0), item.Discount())
}
