package checkout

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/arbora-home/cart-api/internal/common"
	"github.com/arbora-home/cart-api/internal/session"
)

// Handler wires checkout operations to HTTP.
type Handler struct {
	Svc    *Service
	Cookie session.CookieConfig
}

// Quote returns the payable breakdown for the current cart.
func (h *Handler) Quote(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "checkout service not configured", nil)
		return
	}
	sid := h.Cookie.SessionID(w, r)
	quote, err := h.Svc.Quote(r.Context(), sid)
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "unable to compute quote", nil)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{
		"data": map[string]any{
			"pricing":  quote,
			"currency": h.Svc.Currency,
		},
	})
}

// Submit converts the cart into an order and clears it.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "checkout service not configured", nil)
		return
	}
	sid := h.Cookie.SessionID(w, r)
	order, err := h.Svc.Submit(r.Context(), sid)
	if err != nil {
		if errors.Is(err, ErrEmptyCart) {
			common.JSONError(w, http.StatusBadRequest, "EMPTY_CART", "cart is empty", nil)
			return
		}
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "checkout failed", nil)
		return
	}
	common.JSON(w, http.StatusCreated, map[string]any{"data": order})
}

// GetOrder returns a previously submitted order.
func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil || h.Svc.Orders == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "order store not configured", nil)
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "orderId"))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid order id", nil)
		return
	}
	order, err := h.Svc.Orders.OrderByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "order not found", nil)
			return
		}
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "unable to load order", nil)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": order})
}
