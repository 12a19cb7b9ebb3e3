// Package ledger implements the shopping-cart ledger: an ordered list of
// line entries unique by catalog item, with derived totals recomputed
// synchronously after every mutation.
package ledger

import (
	"errors"

	"github.com/arbora-home/cart-api/internal/catalog"
	"github.com/arbora-home/cart-api/internal/pricing"
)

// ErrOutOfStock is returned by Add when the item has no remaining stock.
var ErrOutOfStock = errors.New("item out of stock")

// Entry is one catalog item and the quantity of it currently selected.
type Entry struct {
	Item catalog.Item `json:"item"`
	Qty  int          `json:"qty"`
}

// Subtotal returns the line subtotal for the entry.
func (e Entry) Subtotal() pricing.Money {
	return pricing.Money(e.Qty) * e.Item.Price
}

// Totals are the aggregates derived from the entry list. Discount is
// informational only and never subtracted from Total.
type Totals struct {
	ItemCount int           `json:"itemCount"`
	Subtotal  pricing.Money `json:"subtotal"`
	Discount  pricing.Money `json:"discount"`
	Total     pricing.Money `json:"total"`
}

// Ledger holds the cart entries and their derived totals. It is not safe
// for concurrent use; callers serialise mutations per session.
type Ledger struct {
	entries []Entry
	totals  Totals
}

// New returns an empty ledger.
func New() *Ledger {
	return &Ledger{}
}

// Add inserts a new entry with quantity 1 or increments an existing one,
// clamped so the quantity never exceeds the item's stock. Adding an item
// with no remaining stock fails with ErrOutOfStock and mutates nothing.
func (l *Ledger) Add(item catalog.Item) error {
	if !item.InStock || item.StockQty <= 0 {
		return ErrOutOfStock
	}
	if idx := l.index(item.ID); idx >= 0 {
		qty := l.entries[idx].Qty + 1
		if qty > item.StockQty {
			qty = item.StockQty
		}
		l.entries[idx].Item = item
		l.entries[idx].Qty = qty
	} else {
		l.entries = append(l.entries, Entry{Item: item, Qty: 1})
	}
	l.recompute()
	return nil
}

// Remove deletes the entry for itemID. An absent id is a no-op.
func (l *Ledger) Remove(itemID int64) {
	idx := l.index(itemID)
	if idx < 0 {
		return
	}
	l.entries = append(l.entries[:idx], l.entries[idx+1:]...)
	l.recompute()
}

// SetQuantity sets the entry's quantity, clamped to available stock.
// A quantity of zero or less removes the entry. The operation never
// creates new entries; an absent id is a no-op.
func (l *Ledger) SetQuantity(itemID int64, qty int) {
	idx := l.index(itemID)
	if idx < 0 {
		return
	}
	if qty <= 0 {
		l.entries = append(l.entries[:idx], l.entries[idx+1:]...)
		l.recompute()
		return
	}
	if max := l.entries[idx].Item.StockQty; qty > max {
		qty = max
	}
	l.entries[idx].Qty = qty
	l.recompute()
}

// Increment raises the entry's quantity by one, clamped to stock.
func (l *Ledger) Increment(itemID int64) {
	idx := l.index(itemID)
	if idx < 0 {
		return
	}
	l.SetQuantity(itemID, l.entries[idx].Qty+1)
}

// Decrement lowers the entry's quantity by one; dropping below one
// removes the entry.
func (l *Ledger) Decrement(itemID int64) {
	idx := l.index(itemID)
	if idx < 0 {
		return
	}
	l.SetQuantity(itemID, l.entries[idx].Qty-1)
}

// Clear removes all entries and resets the derived totals.
func (l *Ledger) Clear() {
	l.entries = nil
	l.totals = Totals{}
}

// Entries returns a copy of the entry list in insertion order.
func (l *Ledger) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Entry returns the entry for itemID when present.
func (l *Ledger) Entry(itemID int64) (Entry, bool) {
	if idx := l.index(itemID); idx >= 0 {
		return l.entries[idx], true
	}
	return Entry{}, false
}

// Totals returns the aggregates for the current entry list.
func (l *Ledger) Totals() Totals {
	return l.totals
}

// Len reports the number of distinct entries.
func (l *Ledger) Len() int {
	return len(l.entries)
}

// Empty reports whether the ledger holds no entries.
func (l *Ledger) Empty() bool {
	return len(l.entries) == 0
}

func (l *Ledger) index(itemID int64) int {
	for i := range l.entries {
		if l.entries[i].Item.ID == itemID {
			return i
		}
	}
	return -1
}

func (l *Ledger) recompute() {
	var t Totals
	for _, e := range l.entries {
		t.ItemCount += e.Qty
		t.Subtotal += e.Subtotal()
		t.Discount += pricing.Money(e.Qty) * e.Item.Discount()
	}
	t.Total = t.Subtotal
	l.totals = t
}
