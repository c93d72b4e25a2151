package notification

import (
	"github.com/bancalarisantiago/workfolio/internal/notification/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("notification",
	fx.Provide(repository.NewRepository),
)
