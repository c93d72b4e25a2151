package config

import "go.uber.org/fx"

var Module = fx.Module("config",
	fx.Provide(Load),
	fx.Provide(NewCategoryConfigHolder),
	fx.Provide(func(cfg Config) StorageConfig { return cfg.Storage }),
)
