// Package session owns the per-session cart ledger: restoring it from the
// snapshot store at the start of a request and persisting it after every
// successful mutation.
package session

import (
	"context"
	"errors"
	"time"

	redis "github.com/redis/go-redis/v9"
)

// ErrNotFound indicates no snapshot exists for the session.
var ErrNotFound = errors.New("snapshot not found")

// Store is the durable key/value collaborator holding serialized cart
// snapshots, one per session.
type Store interface {
	Get(ctx context.Context, sessionID string) ([]byte, error)
	Set(ctx context.Context, sessionID string, data []byte) error
	Remove(ctx context.Context, sessionID string) error
}

const defaultPrefix = "cart:ledger:"

// RedisStore persists snapshots in Redis under a fixed namespaced key.
type RedisStore struct {
	Client *redis.Client
	Prefix string
	TTL    time.Duration
}

func (s *RedisStore) key(sessionID string) string {
	prefix := s.Prefix
	if prefix == "" {
		prefix = defaultPrefix
	}
	return prefix + sessionID
}

// Get returns the snapshot bytes for the session.
func (s *RedisStore) Get(ctx context.Context, sessionID string) ([]byte, error) {
	data, err := s.Client.Get(ctx, s.key(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

// Set overwrites the snapshot for the session, refreshing its TTL.
func (s *RedisStore) Set(ctx context.Context, sessionID string, data []byte) error {
	return s.Client.Set(ctx, s.key(sessionID), data, s.TTL).Err()
}

// Remove deletes the snapshot for the session.
func (s *RedisStore) Remove(ctx context.Context, sessionID string) error {
	return s.Client.Del(ctx, s.key(sessionID)).Err()
}
