package catalog

import "github.com/arbora-home/cart-api/internal/pricing"

// Item is a purchasable product record from the catalog.
type Item struct {
	ID            int64          `json:"id"`
	Name          string         `json:"name"`
	Price         pricing.Money  `json:"price"`
	OriginalPrice *pricing.Money `json:"originalPrice,omitempty"`
	Category      string         `json:"category"`
	ImageURL      string         `json:"imageUrl"`
	InStock       bool           `json:"inStock"`
	StockQty      int            `json:"stockQty"`
}

// Normalize enforces the catalog invariants on a loaded record: stock is
// never negative and an item with zero stock is never reported in stock.
func (it *Item) Normalize() {
	if it.StockQty < 0 {
		it.StockQty = 0
	}
	if it.StockQty == 0 {
		it.InStock = false
	}
	if it.Price < 0 {
		it.Price = 0
	}
}

// Discount returns the per-unit markdown when the item carries an original
// pre-discount price above the current one, zero otherwise.
func (it Item) Discount() pricing.Money {
	if it.OriginalPrice == nil {
		return 0
	}
	if d := *it.OriginalPrice - it.Price; d > 0 {
		return d
	}
	return 0
}
