package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"secretsanta/internal/domain"
	"secretsanta/internal/domain/entities"
	"secretsanta/internal/infrastructure/record"
	"secretsanta/internal/ports/output"
)

var _ output.EventStore = (*FileStore)(nil)

// FileStore keeps the record as one JSON file. Writes go to a temporary file
// renamed over the previous one, so a reader sees either the old or the new
// record, never a partial one.
type FileStore struct {
	mu   sync.Mutex
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Load(_ context.Context) (*entities.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

func (s *FileStore) Save(_ context.Context, event *entities.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(event)
}

func (s *FileStore) SaveIfPending(_ context.Context, event *entities.Event) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.read()
	if err != nil {
		return false, err
	}
	if current.ID != event.ID || !current.IsPending() {
		return false, nil
	}
	if err := s.write(event); err != nil {
		return false, err
	}
	return true, nil
}

func (s *FileStore) Delete(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}
	return nil
}

func (s *FileStore) read() (*entities.Event, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, domain.ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}
	event, err := record.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrStorageUnavailable, s.path, err)
	}
	return event, nil
}

func (s *FileStore) write(event *entities.Event) error {
	data, err := record.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}
	tmp, err := os.CreateTemp(dir, ".santa-*.json")
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}
	return nil
}
