package database

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"secretsanta/internal/domain/entities"
	"secretsanta/internal/infrastructure/record"
)

// recordRow is one event_records line ready to be written.
type recordRow struct {
	eventID string
	status  string
	drawnAt pgtype.Timestamptz
	payload []byte
}

// timeToPgtype maps the zero time to NULL.
func timeToPgtype(t time.Time) pgtype.Timestamptz {
	if t.IsZero() {
		return pgtype.Timestamptz{}
	}
	return pgtype.Timestamptz{Time: t, Valid: true}
}

func eventToRow(e *entities.Event) (recordRow, error) {
	payload, err := record.Marshal(e)
	if err != nil {
		return recordRow{}, err
	}
	return recordRow{
		eventID: e.ID,
		status:  string(e.Status),
		drawnAt: timeToPgtype(e.DrawnAt),
		payload: payload,
	}, nil
}

func rowToDomain(payload []byte) (*entities.Event, error) {
	return record.Unmarshal(payload)
}
