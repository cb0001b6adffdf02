package input

import (
	"context"
	"time"

	"secretsanta/internal/domain/view"
)

type ViewUseCase interface {
	Load(ctx context.Context, route view.Route, identity view.Identity) (view.View, error)
	Watch(ctx context.Context, route view.Route, identity view.Identity, interval time.Duration, publish func(view.View, error)) error
}
