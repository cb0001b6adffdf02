package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"secretsanta/internal/domain"
	"secretsanta/internal/domain/derangement"
	"secretsanta/internal/domain/entities"
	"secretsanta/internal/domain/schedule"
	"secretsanta/internal/ports/input"
	"secretsanta/internal/ports/output"
)

var _ input.DrawUseCase = (*DrawService)(nil)

type DrawService struct {
	store output.EventStore
	clock output.Clock
	rng   derangement.Source
}

// NewDrawService builds the draw trigger. rng may be nil to use the shared,
// goroutine-safe generator; a non-nil rng must not be shared across goroutines.
func NewDrawService(store output.EventStore, clock output.Clock, rng derangement.Source) *DrawService {
	return &DrawService{
		store: store,
		clock: clock,
		rng:   rng,
	}
}

func (s *DrawService) ShouldDraw(event *entities.Event, now time.Time) bool {
	return schedule.ShouldDraw(event, now)
}

func (s *DrawService) IsExpired(event *entities.Event, now time.Time) bool {
	return schedule.IsExpired(event, now)
}

// Execute runs the draw if it is due. It returns the current event and
// whether this call performed the draw.
func (s *DrawService) Execute(ctx context.Context) (*entities.Event, bool, error) {
	event, err := s.store.Load(ctx)
	if err != nil {
		return nil, false, err
	}
	return s.draw(ctx, event)
}

// Tick evaluates retention then the draw trigger once. It is what a page load,
// the periodic watcher and the "check now" action all go through.
func (s *DrawService) Tick(ctx context.Context) (input.TickResult, error) {
	event, err := s.store.Load(ctx)
	if errors.Is(err, domain.ErrEventNotFound) {
		return input.TickResult{}, nil
	}
	if err != nil {
		return input.TickResult{}, err
	}

	if schedule.IsExpired(event, s.clock.Now()) {
		if err := s.store.Delete(ctx); err != nil {
			return input.TickResult{Event: event}, fmt.Errorf("delete expired event: %w", err)
		}
		log.WithFields(log.Fields{"event_id": event.ID, "drawn_at": event.DrawnAt}).Info("🗑️ Événement expiré supprimé")
		return input.TickResult{Expired: true}, nil
	}

	current, drawn, err := s.draw(ctx, event)
	if err != nil {
		return input.TickResult{Event: event}, err
	}
	return input.TickResult{Event: current, Drawn: drawn}, nil
}

func (s *DrawService) draw(ctx context.Context, event *entities.Event) (*entities.Event, bool, error) {
	now := s.clock.Now()
	if !schedule.ShouldDraw(event, now) {
		if schedule.Deferred(event, now) {
			log.WithFields(log.Fields{"event_id": event.ID, "participants": len(event.Participants)}).Debug("Tirage en attente de participants")
		}
		return event, false, nil
	}

	mapping, err := derangement.Draw(event.Participants, s.rng)
	if err != nil {
		return event, false, fmt.Errorf("draw: %w", err)
	}
	drawn := event.Clone()
	if err := drawn.ApplyAssignments(mapping, now); err != nil {
		return event, false, fmt.Errorf("apply draw: %w", err)
	}

	ok, err := s.store.SaveIfPending(ctx, drawn)
	if err != nil {
		return event, false, fmt.Errorf("save draw: %w", err)
	}
	if !ok {
		// Another tab drew first: keep its result.
		current, err := s.store.Load(ctx)
		if err != nil {
			return nil, false, err
		}
		log.WithField("event_id", event.ID).Info("Tirage déjà effectué ailleurs")
		return current, false, nil
	}

	log.WithFields(log.Fields{"event_id": drawn.ID, "participants": len(drawn.Participants)}).Info("🎁 Tirage effectué")
	return drawn, true, nil
}
