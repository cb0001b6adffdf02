package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"secretsanta/internal/domain"
	"secretsanta/internal/domain/entities"
	"secretsanta/internal/ports/output"
)

var _ output.EventStore = (*EventStore)(nil)

// DefaultSlot is the key of the single record.
const DefaultSlot = "current"

// EventStore implements output.EventStore on one row of event_records.
// SaveIfPending is a conditional UPDATE, so two processes racing on the draw
// cannot both win.
type EventStore struct {
	db   *pgxpool.Pool
	slot string
}

func NewEventStore(db *pgxpool.Pool, slot string) *EventStore {
	if slot == "" {
		slot = DefaultSlot
	}
	return &EventStore{db: db, slot: slot}
}

func (r *EventStore) Load(ctx context.Context) (*entities.Event, error) {
	var payload []byte
	err := r.db.QueryRow(ctx,
		`SELECT payload FROM event_records WHERE slot = $1`,
		r.slot,
	).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrEventNotFound
	}
	if err != nil {
		return nil, unavailable("load event", err)
	}
	event, err := rowToDomain(payload)
	if err != nil {
		return nil, unavailable("decode event", err)
	}
	return event, nil
}

func (r *EventStore) Save(ctx context.Context, event *entities.Event) error {
	row, err := eventToRow(event)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	_, err = r.db.Exec(ctx,
		`INSERT INTO event_records (slot, event_id, status, drawn_at, payload, updated_at)
		 VALUES ($1, $2, $3, $4, $5, now())
		 ON CONFLICT (slot) DO UPDATE
		 SET event_id = EXCLUDED.event_id, status = EXCLUDED.status,
		     drawn_at = EXCLUDED.drawn_at, payload = EXCLUDED.payload, updated_at = now()`,
		r.slot, row.eventID, row.status, row.drawnAt, row.payload,
	)
	if err != nil {
		return unavailable("save event", err)
	}
	return nil
}

func (r *EventStore) SaveIfPending(ctx context.Context, event *entities.Event) (bool, error) {
	row, err := eventToRow(event)
	if err != nil {
		return false, fmt.Errorf("encode event: %w", err)
	}
	tag, err := r.db.Exec(ctx,
		`UPDATE event_records
		 SET status = $3, drawn_at = $4, payload = $5, updated_at = now()
		 WHERE slot = $1 AND event_id = $2 AND status = 'pending'`,
		r.slot, row.eventID, row.status, row.drawnAt, row.payload,
	)
	if err != nil {
		return false, unavailable("save event if pending", err)
	}
	if tag.RowsAffected() == 1 {
		return true, nil
	}

	var exists bool
	if err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM event_records WHERE slot = $1)`,
		r.slot,
	).Scan(&exists); err != nil {
		return false, unavailable("check event", err)
	}
	if !exists {
		return false, domain.ErrEventNotFound
	}
	return false, nil
}

func (r *EventStore) Delete(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM event_records WHERE slot = $1`, r.slot); err != nil {
		return unavailable("delete event", err)
	}
	return nil
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, domain.ErrStorageUnavailable, err)
}
