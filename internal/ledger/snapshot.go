package ledger

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMalformedSnapshot indicates persisted cart data could not be decoded.
// Callers treat it as "start from an empty ledger", never as fatal.
var ErrMalformedSnapshot = errors.New("malformed cart snapshot")

// snapshot is the serialized form of the ledger. The stored aggregates are
// written for observability but ignored on restore; totals are always
// recomputed from the entry list.
type snapshot struct {
	Entries   []Entry `json:"entries"`
	ItemCount int     `json:"itemCount"`
	Subtotal  int64   `json:"subtotal"`
	Discount  int64   `json:"discount"`
	Total     int64   `json:"total"`
}

// Encode serialises the ledger for the snapshot store.
func (l *Ledger) Encode() ([]byte, error) {
	snap := snapshot{
		Entries:   l.entries,
		ItemCount: l.totals.ItemCount,
		Subtotal:  l.totals.Subtotal,
		Discount:  l.totals.Discount,
		Total:     l.totals.Total,
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("encode cart snapshot: %w", err)
	}
	return data, nil
}

// Restore rebuilds a ledger from persisted snapshot bytes. The shape is
// validated explicitly: unknown fields are ignored, entries with a missing
// item id or a non-positive quantity are dropped, quantities are clamped to
// the recorded stock, and duplicate item ids keep the first occurrence.
func Restore(data []byte) (*Ledger, error) {
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSnapshot, err)
	}
	l := New()
	for _, e := range snap.Entries {
		if e.Item.ID == 0 || e.Qty <= 0 {
			continue
		}
		if l.index(e.Item.ID) >= 0 {
			continue
		}
		e.Item.Normalize()
		if !e.Item.InStock || e.Item.StockQty <= 0 {
			continue
		}
		if e.Qty > e.Item.StockQty {
			e.Qty = e.Item.StockQty
		}
		l.entries = append(l.entries, e)
	}
	l.recompute()
	return l, nil
}
