package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"secretsanta/internal/domain"
	"secretsanta/internal/domain/entities"
	"secretsanta/internal/testhelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var errDisk = fmt.Errorf("%w: disk full", domain.ErrStorageUnavailable)

func TestResilientStore_HealthyPassThrough(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	primary := NewMemoryStore()
	store := NewResilientStore(primary)

	require.NoError(t, store.Save(ctx, sampleEvent()))
	got, err := primary.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "evt_file", got.ID)
	assert.False(t, store.Degraded())

	ok, err := store.SaveIfPending(ctx, drawn(sampleEvent()))
	require.NoError(t, err)
	assert.True(t, ok)
	got, _ = primary.Load(ctx)
	assert.True(t, got.IsCompleted())
}

func TestResilientStore_FallsBackToMemory(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	primary := new(testhelpers.MockEventStore)
	primary.On("Load", mock.Anything).Return(nil, domain.ErrEventNotFound).Once()
	primary.On("Load", mock.Anything).Return(nil, errDisk)
	primary.On("Save", mock.Anything, mock.Anything).Return(errDisk)
	primary.On("SaveIfPending", mock.Anything, mock.Anything).Return(false, errDisk)

	store := NewResilientStore(primary)
	_, err := store.Load(ctx)
	require.ErrorIs(t, err, domain.ErrEventNotFound)

	require.NoError(t, store.Save(ctx, sampleEvent()), "a storage failure is not fatal")
	assert.True(t, store.Degraded())

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Voisins", got.Name)

	ok, err := store.SaveIfPending(ctx, drawn(sampleEvent()))
	require.NoError(t, err)
	assert.True(t, ok)
	got, _ = store.Load(ctx)
	assert.True(t, got.IsCompleted())

	primary.AssertExpectations(t)
}

func TestResilientStore_RecoversOnSuccessfulWrite(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	primary := new(testhelpers.MockEventStore)
	primary.On("Save", mock.Anything, mock.Anything).Return(errDisk).Once()
	primary.On("Save", mock.Anything, mock.Anything).Return(nil)

	store := NewResilientStore(primary)
	require.NoError(t, store.Save(ctx, sampleEvent()))
	require.True(t, store.Degraded())

	require.NoError(t, store.Save(ctx, sampleEvent()))
	assert.False(t, store.Degraded())
}

func TestResilientStore_OtherErrorsPropagate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	boom := errors.New("boom")
	primary := new(testhelpers.MockEventStore)
	primary.On("Load", mock.Anything).Return(nil, boom)
	primary.On("SaveIfPending", mock.Anything, mock.Anything).Return(false, boom)

	store := NewResilientStore(primary)
	_, err := store.Load(ctx)
	assert.ErrorIs(t, err, boom)
	_, err = store.SaveIfPending(ctx, sampleEvent())
	assert.ErrorIs(t, err, boom)
	assert.False(t, store.Degraded())
}

func TestResilientStore_DeleteWhileUnavailable(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	primary := new(testhelpers.MockEventStore)
	primary.On("Save", mock.Anything, mock.Anything).Return(nil).Once()
	primary.On("Delete", mock.Anything).Return(errDisk)
	primary.On("Load", mock.Anything).Return(nil, errDisk)

	store := NewResilientStore(primary)
	require.NoError(t, store.Save(ctx, sampleEvent()))
	require.NoError(t, store.Delete(ctx))
	assert.True(t, store.Degraded())

	_, err := store.Load(ctx)
	assert.ErrorIs(t, err, domain.ErrEventNotFound)
}

// flakyStore is a MemoryStore whose medium can go away.
type flakyStore struct {
	*MemoryStore
	down      atomic.Bool
	failLoads atomic.Int32 // next n loads fail
}

func newFlakyStore() *flakyStore {
	return &flakyStore{MemoryStore: NewMemoryStore()}
}

func (f *flakyStore) Load(ctx context.Context) (*entities.Event, error) {
	if f.down.Load() || f.failLoads.Add(-1) >= 0 {
		return nil, errDisk
	}
	return f.MemoryStore.Load(ctx)
}

func (f *flakyStore) Save(ctx context.Context, event *entities.Event) error {
	if f.down.Load() {
		return errDisk
	}
	return f.MemoryStore.Save(ctx, event)
}

func (f *flakyStore) SaveIfPending(ctx context.Context, event *entities.Event) (bool, error) {
	if f.down.Load() {
		return false, errDisk
	}
	return f.MemoryStore.SaveIfPending(ctx, event)
}

func redrawn(e *entities.Event, at time.Time) *entities.Event {
	d := e.Clone()
	if err := d.ApplyAssignments(map[string]string{"a": "b", "b": "a"}, at); err != nil {
		panic(err)
	}
	return d
}

func TestResilientStore_StaleMemoryNeverOverwritesCompletedPrimary(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	primary := newFlakyStore()
	store := NewResilientStore(primary)

	require.NoError(t, store.Save(ctx, sampleEvent()))
	_, err := store.Load(ctx)
	require.NoError(t, err)

	// Another process draws directly on the primary.
	first := redrawn(sampleEvent(), time.Date(2025, 12, 15, 19, 0, 0, 0, time.UTC))
	ok, err := primary.MemoryStore.SaveIfPending(ctx, first)
	require.NoError(t, err)
	require.True(t, ok)

	// One failed read: this process only sees its stale pending copy.
	primary.failLoads.Store(1)
	stale, err := store.Load(ctx)
	require.NoError(t, err)
	require.True(t, store.Degraded())
	require.True(t, stale.IsPending())

	second := redrawn(stale, time.Date(2025, 12, 15, 19, 1, 0, 0, time.UTC))
	ok, err = store.SaveIfPending(ctx, second)
	require.NoError(t, err)
	assert.False(t, ok, "the primary is already completed")
	assert.False(t, store.Degraded())

	kept, err := primary.MemoryStore.Load(ctx)
	require.NoError(t, err)
	assert.True(t, first.DrawnAt.Equal(kept.DrawnAt), "revealed outcome is untouched")

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, kept, got)

	// Even if the primary goes away now, memory holds the winning draw.
	primary.down.Store(true)
	got, err = store.Load(ctx)
	require.NoError(t, err)
	assert.True(t, first.DrawnAt.Equal(got.DrawnAt))
}

func TestResilientStore_ReplaysOutageDrawWithPendingGuard(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	primary := newFlakyStore()
	store := NewResilientStore(primary)
	require.NoError(t, store.Save(ctx, sampleEvent()))

	primary.down.Store(true)
	local := drawn(sampleEvent())
	ok, err := store.SaveIfPending(ctx, local)
	require.NoError(t, err)
	require.True(t, ok)
	require.True(t, store.Degraded())

	// Back online with the old pending record: the draw is replayed, not redone.
	primary.down.Store(false)
	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.True(t, got.IsCompleted())
	assert.False(t, store.Degraded())
	stored, err := primary.MemoryStore.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, local, stored)
}

func TestResilientStore_OutageDrawLosesToPrimaryDraw(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	primary := newFlakyStore()
	store := NewResilientStore(primary)
	require.NoError(t, store.Save(ctx, sampleEvent()))

	primary.down.Store(true)
	ok, err := store.SaveIfPending(ctx, redrawn(sampleEvent(), time.Date(2025, 12, 15, 19, 5, 0, 0, time.UTC)))
	require.NoError(t, err)
	require.True(t, ok)

	first := redrawn(sampleEvent(), time.Date(2025, 12, 15, 19, 0, 0, 0, time.UTC))
	primary.down.Store(false)
	_, err = primary.MemoryStore.SaveIfPending(ctx, first)
	require.NoError(t, err)

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.True(t, first.DrawnAt.Equal(got.DrawnAt), "the primary record wins")
}

func TestResilientStore_ConcurrentLoadsNeverRevertMirror(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	primary := newFlakyStore()
	store := NewResilientStore(primary)
	require.NoError(t, store.Save(ctx, sampleEvent()))

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = store.Load(ctx)
		}()
	}
	ok, err := store.SaveIfPending(ctx, drawn(sampleEvent()))
	require.NoError(t, err)
	require.True(t, ok)
	wg.Wait()

	primary.down.Store(true)
	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.True(t, got.IsCompleted(), "memory never falls back to the pending copy")
}
