package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"secretsanta/internal/domain"
	"secretsanta/internal/domain/entities"
	"secretsanta/internal/ports/input"
	"secretsanta/internal/ports/output"
	"secretsanta/pkg/ids"
)

var _ input.EventUseCase = (*EventService)(nil)

type EventService struct {
	store output.EventStore
	clock output.Clock
}

func NewEventService(store output.EventStore, clock output.Clock) *EventService {
	return &EventService{
		store: store,
		clock: clock,
	}
}

// CreateEvent starts a new pending event. Only one event lives on a device;
// the existing one has to be deleted first.
func (s *EventService) CreateEvent(ctx context.Context, name string, drawDate time.Time) (*entities.Event, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}
	if drawDate.IsZero() {
		return nil, domain.ErrDrawDateRequired
	}
	_, err := s.store.Load(ctx)
	switch {
	case err == nil:
		return nil, domain.ErrEventExists
	case !errors.Is(err, domain.ErrEventNotFound):
		return nil, fmt.Errorf("load event: %w", err)
	}

	event := &entities.Event{
		ID:        ids.NewID("evt"),
		Name:      name,
		DrawDate:  drawDate,
		Status:    entities.StatusPending,
		CreatedAt: s.clock.Now(),
	}
	if err := s.store.Save(ctx, event); err != nil {
		return nil, fmt.Errorf("save event: %w", err)
	}
	log.WithFields(log.Fields{"event_id": event.ID, "draw_date": drawDate}).Info("🎄 Événement créé")
	return event, nil
}

func (s *EventService) GetEvent(ctx context.Context) (*entities.Event, error) {
	return s.store.Load(ctx)
}

// AddParticipant appends a participant to the event identified by eventID.
// An empty eventID targets the stored event (organizer adding someone).
func (s *EventService) AddParticipant(ctx context.Context, eventID, name, phone string) (*entities.Participant, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}
	var added entities.Participant
	_, err := s.mutate(ctx, eventID, func(e *entities.Event) error {
		added = entities.Participant{
			ID:       ids.NewID("p"),
			Name:     name,
			Phone:    strings.TrimSpace(phone),
			Token:    ids.NewToken(),
			JoinedAt: s.clock.Now(),
		}
		return e.AddParticipant(added)
	})
	if err != nil {
		return nil, err
	}
	log.WithField("participant_id", added.ID).Info("✅ Participant inscrit")
	return &added, nil
}

func (s *EventService) UpdateParticipant(ctx context.Context, participantID, name, phone string) (*entities.Participant, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}
	var updated entities.Participant
	_, err := s.mutate(ctx, "", func(e *entities.Event) error {
		p, err := e.UpdateParticipant(participantID, name, strings.TrimSpace(phone))
		if err != nil {
			return err
		}
		updated = *p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *EventService) RemoveParticipant(ctx context.Context, participantID string) error {
	_, err := s.mutate(ctx, "", func(e *entities.Event) error {
		return e.RemoveParticipant(participantID)
	})
	if err != nil {
		return err
	}
	log.WithField("participant_id", participantID).Info("Participant retiré")
	return nil
}

func (s *EventService) LookupByToken(ctx context.Context, token string) (*entities.Participant, error) {
	event, err := s.store.Load(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrEventNotFound) {
			return nil, domain.ErrParticipantNotFound
		}
		return nil, err
	}
	p := event.FindByToken(token)
	if p == nil {
		return nil, domain.ErrParticipantNotFound
	}
	return p, nil
}

// DeleteEvent forgets the event and all its participants, whatever its status.
func (s *EventService) DeleteEvent(ctx context.Context) error {
	if err := s.store.Delete(ctx); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	log.Info("🗑️ Événement supprimé")
	return nil
}

// mutate applies fn to a copy of the stored event and writes it back only if
// the stored event is still pending, so that an edit never lands on top of a
// draw made meanwhile by another tab.
func (s *EventService) mutate(ctx context.Context, eventID string, fn func(*entities.Event) error) (*entities.Event, error) {
	event, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	if eventID != "" && event.ID != eventID {
		return nil, domain.ErrEventNotFound
	}
	next := event.Clone()
	if err := fn(next); err != nil {
		return nil, err
	}
	ok, err := s.store.SaveIfPending(ctx, next)
	if err != nil {
		return nil, fmt.Errorf("save event: %w", err)
	}
	if !ok {
		return nil, domain.ErrEventAlreadyCompleted
	}
	return next, nil
}
