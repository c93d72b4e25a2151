package company

import (
	"github.com/bancalarisantiago/workfolio/internal/company/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("company",
	fx.Provide(repository.NewRepository),
)
