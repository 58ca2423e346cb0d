package route

import (
	"github.com/gofiber/fiber/v2"

	"sepaku_backend/internals/features/finance/accounts/controller"
)

// AccountAdminRoutes mounts under /api/a/finance.
func AccountAdminRoutes(r fiber.Router, ctl *controller.AccountController) {
	g := r.Group("/accounts")
	g.Post("/", ctl.Create)
	g.Get("/", ctl.List)
	g.Get("/family/:familyId", ctl.ListByFamily)
	g.Get("/:id", ctl.Get)
	g.Patch("/:id", ctl.Patch)
	g.Delete("/:id", ctl.Delete)
}
