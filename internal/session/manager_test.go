package session_test

import (
	"context"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	redis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/arbora-home/cart-api/internal/catalog"
	"github.com/arbora-home/cart-api/internal/ledger"
	"github.com/arbora-home/cart-api/internal/session"
)

type failingStore struct{}

func (failingStore) Get(context.Context, string) ([]byte, error) {
	return nil, errors.New("connection refused")
}
func (failingStore) Set(context.Context, string, []byte) error {
	return errors.New("connection refused")
}
func (failingStore) Remove(context.Context, string) error {
	return errors.New("connection refused")
}

func testItem(id int64) catalog.Item {
	return catalog.Item{ID: id, Name: "Linen Armchair", Price: 45000, Category: "seating", InStock: true, StockQty: 3}
}

func newManager(t *testing.T) (*session.Manager, *miniredis.Miniredis) {
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

func TestManagerSaveLoadRoundTrip(t *testing.T) {
	m, _ := newManager(t)
	ctx := context.Background()

	l := ledger.New()
	require.NoError(t, l.Add(testItem(1)))
	l.Increment(1)
	m.Save(ctx, "sid", l)

	restored := m.Load(ctx, "sid")
	require.Equal(t, l.Entries(), restored.Entries())
	require.Equal(t, l.Totals(), restored.Totals())
}

func TestManagerLoadAbsentSnapshot(t *testing.T) {
	m, _ := newManager(t)
	l := m.Load(context.Background(), "never-seen")
	require.True(t, l.Empty())
}

func TestManagerLoadMalformedSnapshot(t *testing.T) {
	m, mr := newManager(t)
	mr.Set("cart:ledger:sid", "{{{corrupt")

	l := m.Load(context.Background(), "sid")
	require.True(t, l.Empty())
}

func TestManagerStorageFailureIsNotFatal(t *testing.T) {
	m := &session.Manager{Store: failingStore{}, Log: zerolog.Nop()}
	ctx := context.Background()

	l := m.Load(ctx, "sid")
	require.True(t, l.Empty())

	require.NoError(t, l.Add(testItem(1)))
	m.Save(ctx, "sid", l)
	m.Drop(ctx, "sid")

	// the in-memory ledger keeps serving
	require.Equal(t, 1, l.Totals().ItemCount)
}

func TestManagerDropRemovesSnapshot(t *testing.T) {
	m, mr := newManager(t)
	ctx := context.Background()

	l := ledger.New()
	require.NoError(t, l.Add(testItem(1)))
	m.Save(ctx, "sid", l)
	require.True(t, mr.Exists("cart:ledger:sid"))

	m.Drop(ctx, "sid")
	require.False(t, mr.Exists("cart:ledger:sid"))
}
