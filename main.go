package main

import (
	"go.uber.org/fx"

	"sepaku_backend/cmd/fx/configfx"
	"sepaku_backend/cmd/fx/controllerfx"
	"sepaku_backend/cmd/fx/dbfx"
	"sepaku_backend/cmd/fx/repositoryfx"
	"sepaku_backend/cmd/fx/serverfx"
	"sepaku_backend/cmd/fx/servicefx"
)

func main() {
	app := fx.New(
		fx.NopLogger,
		configfx.Module,
		dbfx.Module,
		repositoryfx.Module,
		servicefx.Module,
		controllerfx.Module,
		serverfx.Module,
	)

	app.Run()
}
