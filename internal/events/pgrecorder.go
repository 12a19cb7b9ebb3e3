package events

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// PGRecorder persists domain events in the domain_events table.
type PGRecorder struct {
	Pool *pgxpool.Pool
}

// RecordEvent inserts the event row.
func (r PGRecorder) RecordEvent(ctx context.Context, event Event) error {
	if r.Pool == nil {
		return fmt.Errorf("events: pool not configured")
	}
	_, err := r.Pool.Exec(ctx,
		`INSERT INTO domain_events (id, topic, payload, occurred_at) VALUES ($1, $2, $3, $4)`,
		event.ID, event.Topic, event.Payload, event.OccurredAt,
	)
	return err
}

// LogNotifier writes every emitted event to the structured log.
type LogNotifier struct {
	Log zerolog.Logger
}

// Notify implements Notifier.
func (n LogNotifier) Notify(_ context.Context, event Event) error {
	n.Log.Info().
		Str("event_id", event.ID.String()).
		Str("topic", event.Topic).
		RawJSON("payload", event.Payload).
		Msg("domain_event")
	return nil
}
