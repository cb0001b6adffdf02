package schedule

import (
	"testing"
	"time"

	"secretsanta/internal/domain/entities"

	"github.com/stretchr/testify/assert"
)

var drawDate = time.Date(2025, 12, 20, 18, 0, 0, 0, time.UTC)

func newEvent(status entities.EventStatus, participants int, opts ...func(*entities.Event)) *entities.Event {
	e := &entities.Event{
		ID:       "evt_test",
		Name:     "Noël",
		DrawDate: drawDate,
		Status:   status,
	}
	for i := range participants {
		e.Participants = append(e.Participants, entities.Participant{ID: string(rune('a' + i))})
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func TestShouldDraw(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		event *entities.Event
		now   time.Time
		want  bool
	}{
		{"pending, due, enough participants", newEvent(entities.StatusPending, 3), drawDate, true},
		{"pending, long overdue", newEvent(entities.StatusPending, 2), drawDate.Add(72 * time.Hour), true},
		{"pending, not yet due", newEvent(entities.StatusPending, 3), drawDate.Add(-time.Second), false},
		{"single participant far past draw date", newEvent(entities.StatusPending, 1), drawDate.Add(365 * 24 * time.Hour), false},
		{"no participants", newEvent(entities.StatusPending, 0), drawDate, false},
		{"already completed", newEvent(entities.StatusCompleted, 3), drawDate.Add(time.Hour), false},
		{"nil event", nil, drawDate, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ShouldDraw(tt.event, tt.now))
		})
	}
}

func TestDeferred(t *testing.T) {
	t.Parallel()

	assert.True(t, Deferred(newEvent(entities.StatusPending, 1), drawDate))
	assert.True(t, Deferred(newEvent(entities.StatusPending, 0), drawDate.Add(time.Hour)))
	assert.False(t, Deferred(newEvent(entities.StatusPending, 1), drawDate.Add(-time.Minute)))
	assert.False(t, Deferred(newEvent(entities.StatusPending, 2), drawDate))
	assert.False(t, Deferred(newEvent(entities.StatusCompleted, 1), drawDate))
}

func TestIsExpired(t *testing.T) {
	t.Parallel()

	drawnAt := drawDate.Add(5 * time.Minute)
	completed := newEvent(entities.StatusCompleted, 3, func(e *entities.Event) { e.DrawnAt = drawnAt })

	tests := []struct {
		name  string
		event *entities.Event
		now   time.Time
		want  bool
	}{
		{"one second before retention ends", completed, drawnAt.Add(24*time.Hour - time.Second), false},
		{"exactly at retention end", completed, drawnAt.Add(24 * time.Hour), true},
		{"well after", completed, drawnAt.Add(48 * time.Hour), true},
		{"right after draw", completed, drawnAt, false},
		{"pending never expires", newEvent(entities.StatusPending, 3), drawnAt.Add(100 * time.Hour), false},
		{"nil event", nil, drawnAt, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, IsExpired(tt.event, tt.now))
		})
	}
}

func TestExpiresAt(t *testing.T) {
	t.Parallel()

	drawnAt := drawDate.Add(time.Minute)
	e := newEvent(entities.StatusCompleted, 2, func(e *entities.Event) { e.DrawnAt = drawnAt })
	assert.Equal(t, drawnAt.Add(RetentionPeriod), ExpiresAt(e))
	assert.True(t, ExpiresAt(newEvent(entities.StatusPending, 2)).IsZero())
}
