package checkout_test

import (
	"context"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	redis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/arbora-home/cart-api/internal/catalog"
	"github.com/arbora-home/cart-api/internal/checkout"
	"github.com/arbora-home/cart-api/internal/events"
	"github.com/arbora-home/cart-api/internal/ledger"
	"github.com/arbora-home/cart-api/internal/pricing"
	"github.com/arbora-home/cart-api/internal/session"
)

type memOrderStore struct {
	orders map[uuid.UUID]checkout.Order
	err    error
}

func (m *memOrderStore) SaveOrder(_ context.Context, order checkout.Order) error {
	if m.err != nil {
		return m.err
	}
	if m.orders == nil {
		m.orders = map[uuid.UUID]checkout.Order{}
	}
	m.orders[order.ID] = order
	return nil
}

func (m *memOrderStore) OrderByID(_ context.Context, id uuid.UUID) (checkout.Order, error) {
	order, ok := m.orders[id]
	if !ok {
		return checkout.Order{}, checkout.ErrOrderNotFound
	}
	return order, nil
}

type memRecorder struct {
	events []events.Event
}

func (m *memRecorder) RecordEvent(_ context.Context, event events.Event) error {
	m.events = append(m.events, event)
	return nil
}

func testParams() pricing.Params {
	return pricing.Params{FreeShippingThreshold: 200000, FlatShippingFee: 9999, TaxRateBps: 800}
}

func newSessions(t *testing.T) (*session.Manager, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return &session.Manager{
		Store: &session.RedisStore{Client: client, TTL: time.Hour},
		Log:   zerolog.Nop(),
	}, mr
}

func seedCart(t *testing.T, sessions *session.Manager, sid string) {
	t.Helper()
	l := ledger.New()
	require.NoError(t, l.Add(catalog.Item{ID: 1, Name: "Teak Bench", Price: 150000, Category: "seating", InStock: true, StockQty: 4}))
	sessions.Save(context.Background(), sid, l)
}

func TestSubmitCreatesOrderAndClearsCart(t *testing.T) {
	sessions, mr := newSessions(t)
	seedCart(t, sessions, "sid")

	store := &memOrderStore{}
	recorder := &memRecorder{}
	svc := &checkout.Service{
		Orders:   store,
		Sessions: sessions,
		Pricing:  testParams(),
		Currency: "USD",
		Events:   &events.Bus{Recorder: recorder},
	}

	order, err := svc.Submit(context.Background(), "sid")
	require.NoError(t, err)
	require.Equal(t, pricing.Money(150000), order.Quote.Subtotal)
	require.Equal(t, pricing.Money(9999), order.Quote.Shipping)
	require.Equal(t, pricing.Money(12000), order.Quote.Tax)
	require.Equal(t, pricing.Money(171999), order.Quote.Payable)
	require.Len(t, order.Lines, 1)
	require.Equal(t, int64(1), order.Lines[0].ProductID)

	// checkout success clears the persisted cart
	require.False(t, mr.Exists("cart:ledger:sid"))
	require.True(t, sessions.Load(context.Background(), "sid").Empty())

	require.Len(t, recorder.events, 1)
	require.Equal(t, events.TopicOrderCreated, recorder.events[0].Topic)
}

func TestSubmitEmptyCart(t *testing.T) {
	sessions, _ := newSessions(t)
	svc := &checkout.Service{Orders: &memOrderStore{}, Sessions: sessions, Pricing: testParams()}

	_, err := svc.Submit(context.Background(), "sid")
	require.ErrorIs(t, err, checkout.ErrEmptyCart)
}

func TestSubmitStoreFailureKeepsCart(t *testing.T) {
	sessions, mr := newSessions(t)
	seedCart(t, sessions, "sid")

	svc := &checkout.Service{
		Orders:   &memOrderStore{err: errors.New("db down")},
		Sessions: sessions,
		Pricing:  testParams(),
	}
	_, err := svc.Submit(context.Background(), "sid")
	require.Error(t, err)

	// failed submission must not clear the cart
	require.True(t, mr.Exists("cart:ledger:sid"))
}

func TestQuoteFreeShippingAboveThreshold(t *testing.T) {
	sessions, _ := newSessions(t)
	l := ledger.New()
	require.NoError(t, l.Add(catalog.Item{ID: 2, Name: "Marble Dining Table", Price: 250000, Category: "tables", InStock: true, StockQty: 2}))
	sessions.Save(context.Background(), "sid", l)

	svc := &checkout.Service{Orders: &memOrderStore{}, Sessions: sessions, Pricing: testParams()}
	quote, err := svc.Quote(context.Background(), "sid")
	require.NoError(t, err)
	require.Equal(t, pricing.Money(0), quote.Shipping)
	require.Equal(t, pricing.Money(20000), quote.Tax)
	require.Equal(t, pricing.Money(270000), quote.Payable)
}
