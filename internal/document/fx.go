package document

import (
	"github.com/bancalarisantiago/workfolio/internal/document/repository"
	"github.com/bancalarisantiago/workfolio/internal/document/service"
	"go.uber.org/fx"
)

var Module = fx.Module("document",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewFileService),
)
