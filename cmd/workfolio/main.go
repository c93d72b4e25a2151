package main

import (
	"go.uber.org/fx"

	"github.com/bancalarisantiago/workfolio/internal/clock"
	"github.com/bancalarisantiago/workfolio/internal/config"
	"github.com/bancalarisantiago/workfolio/internal/observability"
	"github.com/bancalarisantiago/workfolio/internal/seed"
	"github.com/bancalarisantiago/workfolio/internal/server"
	"github.com/bancalarisantiago/workfolio/pkg/db"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		db.Module,
		clock.Module,
		seed.Module,
		server.Module,
	)
	app.Run()
}
