// Package checkout turns the session cart into an order: it prices the
// ledger subtotal, persists the order, and clears the cart on success.
package checkout

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/arbora-home/cart-api/internal/events"
	"github.com/arbora-home/cart-api/internal/obs"
	"github.com/arbora-home/cart-api/internal/pricing"
	"github.com/arbora-home/cart-api/internal/session"
)

// ErrEmptyCart rejects checkout submissions for carts with no entries.
var ErrEmptyCart = errors.New("cart is empty")

// ErrOrderNotFound indicates the requested order does not exist.
var ErrOrderNotFound = errors.New("order not found")

// OrderLine is one purchased catalog item within an order.
type OrderLine struct {
	ProductID int64         `json:"productId"`
	Name      string        `json:"name"`
	Qty       int           `json:"qty"`
	UnitPrice pricing.Money `json:"unitPrice"`
	Subtotal  pricing.Money `json:"subtotal"`
}

// Order is a submitted checkout with its payable breakdown.
type Order struct {
	ID        uuid.UUID     `json:"id"`
	SessionID string        `json:"sessionId"`
	Currency  string        `json:"currency"`
	Quote     pricing.Quote `json:"pricing"`
	Lines     []OrderLine   `json:"lines"`
	CreatedAt time.Time     `json:"createdAt"`
}

// OrderStore persists and retrieves orders.
type OrderStore interface {
	SaveOrder(ctx context.Context, order Order) error
	OrderByID(ctx context.Context, id uuid.UUID) (Order, error)
}

// Service handles checkout submissions.
type Service struct {
	Orders   OrderStore
	Sessions *session.Manager
	Pricing  pricing.Params
	Currency string
	Events   *events.Bus
	Now      func() time.Time
}

func (s *Service) now() time.Time {
	if s != nil && s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

// Quote prices the session's current cart without submitting it.
func (s *Service) Quote(ctx context.Context, sessionID string) (pricing.Quote, error) {
	if s == nil || s.Sessions == nil {
		return pricing.Quote{}, errors.New("checkout service not configured")
	}
	l := s.Sessions.Load(ctx, sessionID)
	return s.Pricing.QuoteFor(l.Totals().Subtotal), nil
}

// Submit prices the cart, persists the order, emits order.created, and
// clears the session's ledger. An empty cart fails with ErrEmptyCart.
func (s *Service) Submit(ctx context.Context, sessionID string) (Order, error) {
	if s == nil || s.Orders == nil || s.Sessions == nil {
		return Order{}, errors.New("checkout service not configured")
	}
	l := s.Sessions.Load(ctx, sessionID)
	if l.Empty() {
		countCheckout("empty_cart")
		return Order{}, ErrEmptyCart
	}

	entries := l.Entries()
	lines := make([]OrderLine, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, OrderLine{
			ProductID: e.Item.ID,
			Name:      e.Item.Name,
			Qty:       e.Qty,
			UnitPrice: e.Item.Price,
			Subtotal:  e.Subtotal(),
		})
	}
	order := Order{
		ID:        uuid.New(),
		SessionID: sessionID,
		Currency:  s.Currency,
		Quote:     s.Pricing.QuoteFor(l.Totals().Subtotal),
		Lines:     lines,
		CreatedAt: s.now(),
	}
	if err := s.Orders.SaveOrder(ctx, order); err != nil {
		countCheckout("error")
		return Order{}, err
	}

	if s.Events != nil {
		_, _ = s.Events.Emit(ctx, events.TopicOrderCreated, map[string]any{
			"orderId":   order.ID.String(),
			"sessionId": sessionID,
			"payable":   order.Quote.Payable,
			"currency":  order.Currency,
		})
	}

	// payment succeeded from the cart's point of view: clear the ledger
	l.Clear()
	s.Sessions.Drop(ctx, sessionID)
	countCheckout("ok")
	return order, nil
}

func countCheckout(result string) {
	if obs.CheckoutTotal != nil {
		obs.CheckoutTotal.WithLabelValues(result).Inc()
	}
}
