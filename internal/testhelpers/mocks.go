package testhelpers

import (
	"context"
	"sync"
	"time"

	"secretsanta/internal/domain/entities"

	"github.com/stretchr/testify/mock"
)

// MockEventStore is a mock implementation of output.EventStore
type MockEventStore struct {
	mock.Mock
}

func (m *MockEventStore) Load(ctx context.Context) (*entities.Event, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Event), args.Error(1)
}

func (m *MockEventStore) Save(ctx context.Context, event *entities.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventStore) SaveIfPending(ctx context.Context, event *entities.Event) (bool, error) {
	args := m.Called(ctx, event)
	return args.Bool(0), args.Error(1)
}

func (m *MockEventStore) Delete(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// FakeClock is a settable output.Clock.
type FakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func NewFakeClock(now time.Time) *FakeClock {
	return &FakeClock{now: now}
}

func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *FakeClock) Set(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
