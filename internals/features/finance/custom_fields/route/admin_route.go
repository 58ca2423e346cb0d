package route

import (
	"github.com/gofiber/fiber/v2"

	"sepaku_backend/internals/features/finance/custom_fields/controller"
)

// CustomFieldAdminRoutes mounts under /api/a/finance.
func CustomFieldAdminRoutes(r fiber.Router, ctl *controller.CustomFieldController) {
	g := r.Group("/custom-fields")
	g.Get("/", ctl.List)
	g.Post("/", ctl.Create)
}
