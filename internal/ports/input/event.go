package input

import (
	"context"
	"time"

	"secretsanta/internal/domain/entities"
)

type EventUseCase interface {
	CreateEvent(ctx context.Context, name string, drawDate time.Time) (*entities.Event, error)
	GetEvent(ctx context.Context) (*entities.Event, error)
	AddParticipant(ctx context.Context, eventID, name, phone string) (*entities.Participant, error)
	UpdateParticipant(ctx context.Context, participantID, name, phone string) (*entities.Participant, error)
	RemoveParticipant(ctx context.Context, participantID string) error
	LookupByToken(ctx context.Context, token string) (*entities.Participant, error)
	DeleteEvent(ctx context.Context) error
}
