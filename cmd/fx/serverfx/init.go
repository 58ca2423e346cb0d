package serverfx

import (
	"context"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"sepaku_backend/internals/configs"
	"sepaku_backend/internals/middlewares"
	"sepaku_backend/internals/middlewares/logger"
	routes "sepaku_backend/internals/route"
	routeDetails "sepaku_backend/internals/route/details"
)

var Module = fx.Options(
	fx.Provide(NewApp),
	fx.Invoke(StartServer),
)

func NewApp(cfg configs.Config, db *gorm.DB, ctl routeDetails.FinanceControllers, log zerolog.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		DisableStartupMessage: true,
		ProxyHeader:           fiber.HeaderXForwardedFor,
		ReadTimeout:           15 * time.Second,
		WriteTimeout:          30 * time.Second,
		IdleTimeout:           90 * time.Second,
	})

	app.Use(middlewares.RecoveryMiddleware(!cfg.IsProduction()))
	app.Use(middlewares.RequestContext(log, cfg.RequestTimeout))
	app.Use(logger.LoggerMiddleware())
	app.Use(middlewares.CorsMiddleware(cfg.CorsOrigins))
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())
	app.Use(middlewares.GlobalRateLimiter())

	routes.SetupRoutes(app, cfg, db, ctl, log)
	return app
}

func StartServer(lc fx.Lifecycle, app *fiber.App, cfg configs.Config, log zerolog.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info().Str("port", cfg.Port).Msg("listening")
				if err := app.Listen("0.0.0.0:" + cfg.Port); err != nil {
					log.Error().Err(err).Msg("server stopped")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("stopping http server")
			return app.ShutdownWithContext(ctx)
		},
	})
}
