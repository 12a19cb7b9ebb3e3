package ledger_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arbora-home/cart-api/internal/catalog"
	"github.com/arbora-home/cart-api/internal/ledger"
	"github.com/arbora-home/cart-api/internal/pricing"
)

func item(id int64, price pricing.Money, stock int) catalog.Item {
	return catalog.Item{
		ID:       id,
		Name:     "Oak Sideboard",
		Price:    price,
		Category: "storage",
		InStock:  stock > 0,
		StockQty: stock,
	}
}

func discounted(id int64, price, original pricing.Money, stock int) catalog.Item {
	it := item(id, price, stock)
	it.OriginalPrice = &original
	return it
}

func requireConsistent(t *testing.T, l *ledger.Ledger) {
	t.Helper()
	var count int
	var subtotal pricing.Money
	seen := map[int64]bool{}
	for _, e := range l.Entries() {
		require.GreaterOrEqual(t, e.Qty, 1)
		require.LessOrEqual(t, e.Qty, e.Item.StockQty)
		require.False(t, seen[e.Item.ID], "duplicate entry for item %d", e.Item.ID)
		seen[e.Item.ID] = true
		count += e.Qty
		subtotal += e.Subtotal()
	}
	require.Equal(t, count, l.Totals().ItemCount)
	require.Equal(t, subtotal, l.Totals().Subtotal)
	require.Equal(t, subtotal, l.Totals().Total)
}

func TestAddFirstItem(t *testing.T) {
	l := ledger.New()
	require.NoError(t, l.Add(item(1, 100, 5)))

	require.Equal(t, 1, l.Totals().ItemCount)
	require.Equal(t, pricing.Money(100), l.Totals().Subtotal)
	requireConsistent(t, l)
}

func TestAddClampsAtStock(t *testing.T) {
	l := ledger.New()
	it := item(1, 100, 5)
	for i := 0; i < 6; i++ {
		require.NoError(t, l.Add(it))
	}

	entry, ok := l.Entry(1)
	require.True(t, ok)
	require.Equal(t, 5, entry.Qty)
	require.Equal(t, 5, l.Totals().ItemCount)
	require.Equal(t, pricing.Money(500), l.Totals().Subtotal)
	requireConsistent(t, l)
}

func TestAddOutOfStock(t *testing.T) {
	l := ledger.New()
	err := l.Add(item(1, 100, 0))
	require.ErrorIs(t, err, ledger.ErrOutOfStock)
	require.True(t, l.Empty())

	unavailable := item(2, 100, 3)
	unavailable.InStock = false
	require.ErrorIs(t, l.Add(unavailable), ledger.ErrOutOfStock)
	require.True(t, l.Empty())
}

func TestAddKeepsEntryUniquePerItem(t *testing.T) {
	l := ledger.New()
	require.NoError(t, l.Add(item(1, 100, 5)))
	require.NoError(t, l.Add(item(2, 50, 2)))
	require.NoError(t, l.Add(item(1, 100, 5)))

	require.Equal(t, 2, l.Len())
	requireConsistent(t, l)
}

func TestSetQuantityZeroRemoves(t *testing.T) {
	l := ledger.New()
	require.NoError(t, l.Add(item(1, 50, 10)))
	l.SetQuantity(1, 3)
	require.Equal(t, pricing.Money(150), l.Totals().Subtotal)

	l.SetQuantity(1, 0)
	require.True(t, l.Empty())
	require.Equal(t, 0, l.Totals().ItemCount)
	require.Equal(t, pricing.Money(0), l.Totals().Subtotal)
}

func TestSetQuantityClampsToStock(t *testing.T) {
	l := ledger.New()
	require.NoError(t, l.Add(item(1, 50, 4)))
	l.SetQuantity(1, 99)

	entry, _ := l.Entry(1)
	require.Equal(t, 4, entry.Qty)
	requireConsistent(t, l)
}

func TestSetQuantityNeverCreatesEntries(t *testing.T) {
	l := ledger.New()
	l.SetQuantity(42, 3)
	require.True(t, l.Empty())
}

func TestIncrementDecrement(t *testing.T) {
	l := ledger.New()
	require.NoError(t, l.Add(item(1, 100, 2)))

	l.Increment(1)
	entry, _ := l.Entry(1)
	require.Equal(t, 2, entry.Qty)

	// clamped at stock
	l.Increment(1)
	entry, _ = l.Entry(1)
	require.Equal(t, 2, entry.Qty)

	l.Decrement(1)
	entry, _ = l.Entry(1)
	require.Equal(t, 1, entry.Qty)

	// decrement below one removes the entry
	l.Decrement(1)
	require.True(t, l.Empty())

	// absent ids are no-ops
	l.Increment(7)
	l.Decrement(7)
	require.True(t, l.Empty())
}

func TestRemoveIsIdempotent(t *testing.T) {
	l := ledger.New()
	require.NoError(t, l.Add(item(1, 100, 5)))

	l.Remove(1)
	first := l.Totals()
	l.Remove(1)
	require.Equal(t, first, l.Totals())
	require.True(t, l.Empty())
}

func TestClear(t *testing.T) {
	l := ledger.New()
	require.NoError(t, l.Add(item(1, 100, 5)))
	require.NoError(t, l.Add(item(2, 250, 5)))

	l.Clear()
	require.True(t, l.Empty())
	require.Equal(t, ledger.Totals{}, l.Totals())
}

func TestDiscountIsInformationalOnly(t *testing.T) {
	l := ledger.New()
	require.NoError(t, l.Add(discounted(1, 80, 100, 5)))
	l.SetQuantity(1, 3)

	totals := l.Totals()
	require.Equal(t, pricing.Money(240), totals.Subtotal)
	require.Equal(t, pricing.Money(60), totals.Discount)
	// the markdown is display-only and never subtracted
	require.Equal(t, totals.Subtotal, totals.Total)
}

func TestDiscountIgnoresMarkup(t *testing.T) {
	l := ledger.New()
	// original price below current price contributes no discount
	require.NoError(t, l.Add(discounted(1, 100, 90, 5)))
	require.Equal(t, pricing.Money(0), l.Totals().Discount)
}
