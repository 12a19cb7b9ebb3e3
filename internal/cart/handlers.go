// Package cart exposes the shopping-cart ledger over HTTP. Each request
// restores the session's ledger from the snapshot store, applies one
// mutation, and persists the result before responding.
package cart

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	validator "github.com/go-playground/validator/v10"

	"github.com/arbora-home/cart-api/internal/catalog"
	"github.com/arbora-home/cart-api/internal/common"
	"github.com/arbora-home/cart-api/internal/events"
	"github.com/arbora-home/cart-api/internal/ledger"
	"github.com/arbora-home/cart-api/internal/obs"
	"github.com/arbora-home/cart-api/internal/pricing"
	"github.com/arbora-home/cart-api/internal/session"
)

// Handler wires cart operations to HTTP.
type Handler struct {
	Sessions *session.Manager
	Catalog  catalog.Source
	Cookie   session.CookieConfig
	Pricing  pricing.Params
	Currency string
	Validate *validator.Validate
	Events   *events.Bus
}

type addItemPayload struct {
	ProductID int64 `json:"productId" validate:"required,gt=0"`
}

type setQtyPayload struct {
	Qty int `json:"qty" validate:"gte=0"`
}

// Get returns the current cart contents and totals.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	sid := h.Cookie.SessionID(w, r)
	l := h.Sessions.Load(r.Context(), sid)
	h.renderCart(w, l)
}

// AddItem adds a catalog item to the cart or increments its quantity.
func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	var payload addItemPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	if err := h.validate(payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "productId is required", nil)
		return
	}

	item, err := h.Catalog.ItemByID(r.Context(), payload.ProductID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			countOp("add", "not_found")
			common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "product not found", nil)
			return
		}
		countOp("add", "error")
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "unable to load product", nil)
		return
	}

	sid := h.Cookie.SessionID(w, r)
	l := h.Sessions.Load(r.Context(), sid)
	if err := l.Add(item); err != nil {
		if errors.Is(err, ledger.ErrOutOfStock) {
			countOp("add", "out_of_stock")
			common.JSONError(w, http.StatusConflict, "OUT_OF_STOCK", "item is out of stock", nil)
			return
		}
		countOp("add", "error")
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", err.Error(), nil)
		return
	}
	h.Sessions.Save(r.Context(), sid, l)
	countOp("add", "ok")
	h.renderCart(w, l)
}

// UpdateItem sets the quantity for a cart entry. Zero removes the entry;
// an id that is not in the cart is a no-op.
func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	itemID, ok := h.itemID(w, r)
	if !ok {
		return
	}
	var payload setQtyPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	if err := h.validate(payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "qty must not be negative", nil)
		return
	}

	h.mutate(w, r, "set_quantity", func(l *ledger.Ledger) {
		l.SetQuantity(itemID, payload.Qty)
	})
}

// IncrementItem raises an entry's quantity by one, clamped to stock.
func (h *Handler) IncrementItem(w http.ResponseWriter, r *http.Request) {
	itemID, ok := h.itemID(w, r)
	if !ok {
		return
	}
	h.mutate(w, r, "increment", func(l *ledger.Ledger) {
		l.Increment(itemID)
	})
}

// DecrementItem lowers an entry's quantity by one; below one removes it.
func (h *Handler) DecrementItem(w http.ResponseWriter, r *http.Request) {
	itemID, ok := h.itemID(w, r)
	if !ok {
		return
	}
	h.mutate(w, r, "decrement", func(l *ledger.Ledger) {
		l.Decrement(itemID)
	})
}

// RemoveItem deletes a cart entry. An absent id is a no-op.
func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	itemID, ok := h.itemID(w, r)
	if !ok {
		return
	}
	h.mutate(w, r, "remove", func(l *ledger.Ledger) {
		l.Remove(itemID)
	})
}

// Clear empties the cart and drops the persisted snapshot.
func (h *Handler) Clear(w http.ResponseWriter, r *http.Request) {
	sid := h.Cookie.SessionID(w, r)
	l := h.Sessions.Load(r.Context(), sid)
	l.Clear()
	h.Sessions.Drop(r.Context(), sid)
	countOp("clear", "ok")
	if h.Events != nil {
		_, _ = h.Events.Emit(r.Context(), events.TopicCartCleared, map[string]any{"sessionId": sid})
	}
	h.renderCart(w, l)
}

func (h *Handler) mutate(w http.ResponseWriter, r *http.Request, op string, fn func(*ledger.Ledger)) {
	sid := h.Cookie.SessionID(w, r)
	l := h.Sessions.Load(r.Context(), sid)
	fn(l)
	h.Sessions.Save(r.Context(), sid, l)
	countOp(op, "ok")
	h.renderCart(w, l)
}

func (h *Handler) itemID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "itemId"), 10, 64)
	if err != nil || id <= 0 {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid item id", nil)
		return 0, false
	}
	return id, true
}

func (h *Handler) validate(v any) error {
	if h.Validate == nil {
		return nil
	}
	return h.Validate.Struct(v)
}

func (h *Handler) renderCart(w http.ResponseWriter, l *ledger.Ledger) {
	entries := l.Entries()
	items := make([]map[string]any, 0, len(entries))
	for _, e := range entries {
		items = append(items, map[string]any{
			"id":            e.Item.ID,
			"name":          e.Item.Name,
			"price":         e.Item.Price,
			"originalPrice": e.Item.OriginalPrice,
			"category":      e.Item.Category,
			"imageUrl":      e.Item.ImageURL,
			"stockQty":      e.Item.StockQty,
			"qty":           e.Qty,
			"subtotal":      e.Subtotal(),
		})
	}
	totals := l.Totals()
	common.JSON(w, http.StatusOK, map[string]any{
		"data": map[string]any{
			"items":    items,
			"totals":   totals,
			"currency": h.Currency,
		},
	})
}

func countOp(op, result string) {
	if obs.CartOpsTotal != nil {
		obs.CartOpsTotal.WithLabelValues(op, result).Inc()
	}
}
