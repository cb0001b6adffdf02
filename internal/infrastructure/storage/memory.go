package storage

import (
	"context"
	"sync"

	"secretsanta/internal/domain"
	"secretsanta/internal/domain/entities"
	"secretsanta/internal/ports/output"
)

var _ output.EventStore = (*MemoryStore)(nil)

// MemoryStore keeps the record for the lifetime of the process only.
type MemoryStore struct {
	mu    sync.Mutex
	event *entities.Event
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load(_ context.Context) (*entities.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.event == nil {
		return nil, domain.ErrEventNotFound
	}
	return s.event.Clone(), nil
}

func (s *MemoryStore) Save(_ context.Context, event *entities.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.event = event.Clone()
	return nil
}

func (s *MemoryStore) SaveIfPending(_ context.Context, event *entities.Event) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.event == nil {
		return false, domain.ErrEventNotFound
	}
	if s.event.ID != event.ID || !s.event.IsPending() {
		return false, nil
	}
	s.event = event.Clone()
	return true, nil
}

func (s *MemoryStore) Delete(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.event = nil
	return nil
}
