package employee

import "go.uber.org/fx"

var Module = fx.Module("employee",
	fx.Provide(NewContextResolver),
	fx.Provide(NewDocumentsService),
	fx.Provide(NewPaychecksService),
)
