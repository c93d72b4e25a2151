package user

import (
	"github.com/bancalarisantiago/workfolio/internal/user/repository"
	"github.com/bancalarisantiago/workfolio/internal/user/service"
	"go.uber.org/fx"
)

var Module = fx.Module("user",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewAvatarService),
)
