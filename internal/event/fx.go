package event

import (
	"github.com/bancalarisantiago/workfolio/internal/event/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("event",
	fx.Provide(repository.NewRepository),
)
