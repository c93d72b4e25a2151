package paycheck

import (
	"github.com/bancalarisantiago/workfolio/internal/paycheck/repository"
	"github.com/bancalarisantiago/workfolio/internal/paycheck/service"
	"go.uber.org/fx"
)

var Module = fx.Module("paycheck",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewFileService),
)
