// Package schedule holds the time-based rules of an event: when the draw may
// run and when a finished event must be forgotten.
package schedule

import (
	"time"

	"secretsanta/internal/domain/entities"
)

// RetentionPeriod is how long a completed event is kept after its draw.
const RetentionPeriod = 24 * time.Hour

// MinParticipants is the smallest group a derangement exists for.
const MinParticipants = 2

// ShouldDraw reports whether the draw must run now.
func ShouldDraw(event *entities.Event, now time.Time) bool {
	return isDue(event, now) && len(event.Participants) >= MinParticipants
}

// Deferred reports a due draw that is waiting for more participants. The
// event stays pending; the organizer is told to invite more people.
func Deferred(event *entities.Event, now time.Time) bool {
	return isDue(event, now) && len(event.Participants) < MinParticipants
}

// IsExpired reports whether a completed event has outlived RetentionPeriod.
func IsExpired(event *entities.Event, now time.Time) bool {
	if event == nil || !event.IsCompleted() || event.DrawnAt.IsZero() {
		return false
	}
	return now.Sub(event.DrawnAt) >= RetentionPeriod
}

// ExpiresAt returns the instant a completed event becomes eligible for
// deletion, or the zero time while it is pending.
func ExpiresAt(event *entities.Event) time.Time {
	if event == nil || !event.IsCompleted() || event.DrawnAt.IsZero() {
		return time.Time{}
	}
	return event.DrawnAt.Add(RetentionPeriod)
}

func isDue(event *entities.Event, now time.Time) bool {
	if event == nil || !event.IsPending() || event.DrawDate.IsZero() {
		return false
	}
	return !now.Before(event.DrawDate)
}
