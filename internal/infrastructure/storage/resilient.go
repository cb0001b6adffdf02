package storage

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	log "github.com/sirupsen/logrus"

	"secretsanta/internal/domain"
	"secretsanta/internal/domain/entities"
	"secretsanta/internal/ports/output"
)

var (
	_ output.EventStore    = (*ResilientStore)(nil)
	_ output.StorageHealth = (*ResilientStore)(nil)
)

// ResilientStore mirrors the primary record in memory. When the primary
// becomes unavailable it keeps working from memory for the rest of the
// process and reports itself degraded; nothing written meanwhile survives a
// restart unless a later write reaches the primary again.
//
// The primary always decides: every operation tries it first, and a
// conditional write is replayed there with its pending guard, never as a
// plain overwrite.
type ResilientStore struct {
	primary output.EventStore
	memory  *MemoryStore

	// mu serializes operations so the mirror never goes back in time.
	mu       sync.Mutex
	degraded atomic.Bool
}

func NewResilientStore(primary output.EventStore) *ResilientStore {
	return &ResilientStore{
		primary: primary,
		memory:  NewMemoryStore(),
	}
}

// Degraded reports whether the primary store failed and memory is serving.
func (s *ResilientStore) Degraded() bool {
	return s.degraded.Load()
}

func (s *ResilientStore) Load(ctx context.Context) (*entities.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	event, err := s.primary.Load(ctx)
	switch {
	case err == nil:
		return s.reconcile(ctx, event)
	case errors.Is(err, domain.ErrEventNotFound):
		return s.reconcileMissing(ctx)
	case s.fallback(err):
		return s.memory.Load(ctx)
	default:
		return nil, err
	}
}

func (s *ResilientStore) Save(ctx context.Context, event *entities.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.primary.Save(ctx, event); err == nil {
		s.markHealthy()
	} else if !s.fallback(err) {
		return err
	}
	return s.memory.Save(ctx, event)
}

func (s *ResilientStore) SaveIfPending(ctx context.Context, event *entities.Event) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ok, err := s.primary.SaveIfPending(ctx, event)
	switch {
	case err == nil:
		s.markHealthy()
		if !ok {
			// Another writer got there first: adopt its record.
			if _, err := s.refresh(ctx); err != nil && !errors.Is(err, domain.ErrEventNotFound) {
				return false, err
			}
			return false, nil
		}
		_ = s.memory.Save(ctx, event)
		return true, nil

	case errors.Is(err, domain.ErrEventNotFound) && s.Degraded():
		// The record was created in memory during the outage.
		ok, err := s.memory.SaveIfPending(ctx, event)
		if ok {
			if perr := s.primary.Save(ctx, event); perr == nil {
				s.markHealthy()
			}
		}
		return ok, err

	case s.fallback(err):
		return s.memory.SaveIfPending(ctx, event)

	default:
		return false, err
	}
}

func (s *ResilientStore) Delete(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_ = s.memory.Delete(ctx)
	if err := s.primary.Delete(ctx); err != nil && !s.fallback(err) {
		return err
	}
	return nil
}

// reconcile runs after a successful primary read. A draw completed in memory
// during an outage is replayed with the pending guard; in every other case
// the primary record replaces the memory copy.
func (s *ResilientStore) reconcile(ctx context.Context, stored *entities.Event) (*entities.Event, error) {
	if s.Degraded() {
		local, err := s.memory.Load(ctx)
		if err == nil && local.ID == stored.ID && local.IsCompleted() && stored.IsPending() {
			ok, err := s.primary.SaveIfPending(ctx, local)
			switch {
			case err != nil && s.fallback(err):
				return local, nil
			case err != nil:
				return nil, err
			case ok:
				stored = local
			default:
				s.markHealthy()
				return s.refresh(ctx)
			}
		}
	}
	s.markHealthy()
	_ = s.memory.Save(ctx, stored)
	return stored, nil
}

// reconcileMissing runs when the primary has no record.
func (s *ResilientStore) reconcileMissing(ctx context.Context) (*entities.Event, error) {
	if s.Degraded() {
		if local, err := s.memory.Load(ctx); err == nil {
			// Created in memory during the outage: the primary has nothing to lose.
			if err := s.primary.Save(ctx, local); err != nil {
				if s.fallback(err) {
					return local, nil
				}
				return nil, err
			}
			s.markHealthy()
			return local, nil
		}
	}
	s.markHealthy()
	_ = s.memory.Delete(ctx)
	return nil, domain.ErrEventNotFound
}

// refresh replaces the memory copy with whatever the primary holds.
func (s *ResilientStore) refresh(ctx context.Context) (*entities.Event, error) {
	event, err := s.primary.Load(ctx)
	switch {
	case err == nil:
		_ = s.memory.Save(ctx, event)
		return event, nil
	case errors.Is(err, domain.ErrEventNotFound):
		_ = s.memory.Delete(ctx)
		return nil, err
	case s.fallback(err):
		return s.memory.Load(ctx)
	default:
		return nil, err
	}
}

// fallback switches to memory on storage failures and reports whether it did.
func (s *ResilientStore) fallback(err error) bool {
	if !errors.Is(err, domain.ErrStorageUnavailable) {
		return false
	}
	if !s.degraded.Swap(true) {
		log.WithError(err).Warn("⚠️ Stockage indisponible, les données ne survivront pas au redémarrage")
	}
	return true
}

func (s *ResilientStore) markHealthy() {
	if s.degraded.Swap(false) {
		log.Info("✅ Stockage de nouveau disponible")
	}
}
