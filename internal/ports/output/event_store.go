package output

import (
	"context"

	"secretsanta/internal/domain/entities"
)

// EventStore persists the single event record of this device.
//
// Load returns domain.ErrEventNotFound when nothing is stored. Failures of the
// backing medium wrap domain.ErrStorageUnavailable. A failed write leaves the
// previously stored record intact.
type EventStore interface {
	Load(ctx context.Context) (*entities.Event, error)
	Save(ctx context.Context, event *entities.Event) error
	// SaveIfPending writes event only if the stored record with the same ID
	// is still pending. It returns false, and writes nothing, otherwise.
	SaveIfPending(ctx context.Context, event *entities.Event) (bool, error)
	Delete(ctx context.Context) error
}

// StorageHealth reports whether the store lost its durable backend and only
// keeps data for the current process.
type StorageHealth interface {
	Degraded() bool
}
