package application

import (
	"context"
	"time"

	"secretsanta/internal/domain/view"
	"secretsanta/internal/ports/input"
	"secretsanta/internal/ports/output"
)

var _ input.ViewUseCase = (*ViewService)(nil)

type ViewService struct {
	draws  *DrawService
	clock  output.Clock
	health output.StorageHealth
}

// NewViewService builds the view resolver. health may be nil when the store
// cannot degrade.
func NewViewService(draws *DrawService, clock output.Clock, health output.StorageHealth) *ViewService {
	return &ViewService{
		draws:  draws,
		clock:  clock,
		health: health,
	}
}

// Load evaluates the draw and retention rules once, then resolves the view.
func (s *ViewService) Load(ctx context.Context, route view.Route, identity view.Identity) (view.View, error) {
	res, err := s.draws.Tick(ctx)
	if err != nil {
		return view.Loading(), err
	}
	v := view.Resolve(route, res.Event, identity, s.clock.Now())
	v.StorageDegraded = s.health != nil && s.health.Degraded()
	return v, nil
}

// Watch publishes the view once, then re-evaluates it every interval until ctx
// is cancelled. A tick only publishes when the view changed or failed.
func (s *ViewService) Watch(ctx context.Context, route view.Route, identity view.Identity, interval time.Duration, publish func(view.View, error)) error {
	v, err := s.Load(ctx, route, identity)
	publish(v, err)
	last := v.Fingerprint()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			v, err := s.Load(ctx, route, identity)
			if err != nil {
				publish(v, err)
				continue
			}
			if fp := v.Fingerprint(); fp != last {
				last = fp
				publish(v, nil)
			}
		}
	}
}
