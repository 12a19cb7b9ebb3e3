package session_test

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	redis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/arbora-home/cart-api/internal/session"
)

func newStore(t *testing.T) (*session.RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return &session.RedisStore{Client: client, TTL: time.Hour}, mr
}

func TestRedisStoreRoundTrip(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	_, err := store.Get(ctx, "sid")
	require.ErrorIs(t, err, session.ErrNotFound)

	require.NoError(t, store.Set(ctx, "sid", []byte(`{"entries":[]}`)))
	data, err := store.Get(ctx, "sid")
	require.NoError(t, err)
	require.JSONEq(t, `{"entries":[]}`, string(data))

	require.NoError(t, store.Remove(ctx, "sid"))
	_, err = store.Get(ctx, "sid")
	require.ErrorIs(t, err, session.ErrNotFound)
}

func TestRedisStoreUsesNamespacedKey(t *testing.T) {
	store, mr := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "abc", []byte("{}")))
	require.True(t, mr.Exists("cart:ledger:abc"))
}

func TestRedisStoreExpiresSnapshots(t *testing.T) {
	store, mr := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "sid", []byte("{}")))
	mr.FastForward(2 * time.Hour)

	_, err := store.Get(ctx, "sid")
	require.ErrorIs(t, err, session.ErrNotFound)
}
