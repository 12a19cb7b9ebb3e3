package session

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/arbora-home/cart-api/internal/ledger"
	"github.com/arbora-home/cart-api/internal/obs"
)

// Manager loads and persists the ledger for a session. Storage failures are
// never fatal to the request flow: the caller keeps working with the
// in-memory ledger and the condition is logged.
type Manager struct {
	Store Store
	Log   zerolog.Logger
}

// Load restores the session's ledger from the snapshot store. An absent or
// malformed snapshot yields an empty ledger; so does an unavailable store.
func (m *Manager) Load(ctx context.Context, sessionID string) *ledger.Ledger {
	if m == nil || m.Store == nil {
		return ledger.New()
	}
	data, err := m.Store.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ledger.New()
		}
		m.Log.Error().Err(err).Str("session_id", sessionID).Msg("snapshot store unavailable, serving empty cart")
		countRestore("unavailable")
		return ledger.New()
	}
	l, err := ledger.Restore(data)
	if err != nil {
		m.Log.Warn().Err(err).Str("session_id", sessionID).Msg("discarding malformed cart snapshot")
		countRestore("malformed")
		return ledger.New()
	}
	countRestore("ok")
	return l
}

// Save overwrites the persisted snapshot with the ledger's current state.
// A write failure is logged and swallowed; the in-memory state stays
// authoritative for the remainder of the request.
func (m *Manager) Save(ctx context.Context, sessionID string, l *ledger.Ledger) {
	if m == nil || m.Store == nil {
		return
	}
	data, err := l.Encode()
	if err != nil {
		m.Log.Error().Err(err).Str("session_id", sessionID).Msg("encode cart snapshot")
		countPersist("encode_error")
		return
	}
	if err := m.Store.Set(ctx, sessionID, data); err != nil {
		m.Log.Error().Err(err).Str("session_id", sessionID).Msg("persist cart snapshot")
		countPersist("unavailable")
		return
	}
	countPersist("ok")
}

// Drop removes the persisted snapshot, used on clear and after checkout.
func (m *Manager) Drop(ctx context.Context, sessionID string) {
	if m == nil || m.Store == nil {
		return
	}
	if err := m.Store.Remove(ctx, sessionID); err != nil {
		m.Log.Error().Err(err).Str("session_id", sessionID).Msg("remove cart snapshot")
		countPersist("unavailable")
		return
	}
	countPersist("ok")
}

func countPersist(result string) {
	if obs.SnapshotPersistTotal != nil {
		obs.SnapshotPersistTotal.WithLabelValues(result).Inc()
	}
}

func countRestore(result string) {
	if obs.SnapshotRestoreTotal != nil {
		obs.SnapshotRestoreTotal.WithLabelValues(result).Inc()
	}
}
