package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"sepaku_backend/internals/configs"
	"sepaku_backend/internals/constants"
	"sepaku_backend/internals/middlewares"
	"sepaku_backend/internals/middlewares/auth"
	routeDetails "sepaku_backend/internals/route/details"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, cfg configs.Config, db *gorm.DB, ctl routeDetails.FinanceControllers, log zerolog.Logger) {
	startTime = time.Now()

	BaseRoutes(app, db)

	jwt := auth.AuthJWT(auth.AuthJWTOpts{
		Secret:              cfg.JWTSecret,
		AllowCookieFallback: true,
	})

	// ===================== PRIVATE (USER) =====================
	log.Info().Msg("setting up user finance group")
	user := app.Group("/api/u/finance",
		jwt,
		auth.OnlyRoles("", constants.AllRoles...),
		middlewares.SubmitRateLimiter(),
	)

	// ===================== ADMIN (FINANCE STAFF) =====================
	log.Info().Msg("setting up admin finance group")
	admin := app.Group("/api/a/finance",
		jwt,
		auth.OnlyRoles(constants.RoleErrorFinance("the finance dashboard"), constants.FinanceStaff...),
	)

	// ===================== MOUNT ROUTES =====================
	routeDetails.FinanceUserRoutes(user, ctl)
	routeDetails.FinanceAdminRoutes(admin, ctl)
	log.Info().Msg("finance routes mounted")
}
