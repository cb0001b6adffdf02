package input

import (
	"context"
	"time"

	"secretsanta/internal/domain/entities"
)

// TickResult reports what one evaluation of the draw and retention rules did.
type TickResult struct {
	Event   *entities.Event // nil when nothing is stored or the event expired
	Drawn   bool
	Expired bool
}

type DrawUseCase interface {
	ShouldDraw(event *entities.Event, now time.Time) bool
	IsExpired(event *entities.Event, now time.Time) bool
	Execute(ctx context.Context) (*entities.Event, bool, error)
	Tick(ctx context.Context) (TickResult, error)
}
