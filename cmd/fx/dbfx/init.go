package dbfx

import (
	"context"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"sepaku_backend/internals/configs"
	database "sepaku_backend/internals/databases"
)

var Module = fx.Provide(provideDB)

func provideDB(lc fx.Lifecycle, cfg configs.Config, log zerolog.Logger) (*gorm.DB, error) {
	db, err := database.ConnectDB(cfg, log)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := database.Ping(ctx, db); err != nil {
				return err
			}
			if !cfg.AutoMigrate {
				return nil
			}
			return database.Migrate(ctx, db, log)
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("closing db pool")
			return database.Close(db)
		},
	})
	return db, nil
}
