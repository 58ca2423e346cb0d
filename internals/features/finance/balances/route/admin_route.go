package route

import (
	"github.com/gofiber/fiber/v2"

	"sepaku_backend/internals/features/finance/balances/controller"
)

func BalanceAdminRoutes(r fiber.Router, ctl *controller.BalanceController) {
	g := r.Group("/balances")
	g.Get("/families/:familyId/years/:yearId", ctl.Family)
	g.Get("/years/:yearId/progress", ctl.Progress)
	g.Get("/years/:yearId", ctl.Year)
}
