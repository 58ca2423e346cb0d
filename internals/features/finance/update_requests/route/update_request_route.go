package route

import (
	"github.com/gofiber/fiber/v2"

	"sepaku_backend/internals/features/finance/update_requests/controller"
)

// UpdateRequestAdminRoutes mounts under /api/a/finance.
func UpdateRequestAdminRoutes(r fiber.Router, ctl *controller.UpdateRequestController) {
	g := r.Group("/update-requests")
	g.Get("/", ctl.List)
	g.Get("/:id", ctl.Get)
	g.Post("/:id/approve", ctl.Approve)
	g.Post("/:id/reject", ctl.Reject)
}

// UpdateRequestUserRoutes mounts under /api/u/finance.
func UpdateRequestUserRoutes(r fiber.Router, ctl *controller.UpdateRequestController) {
	g := r.Group("/update-requests")
	g.Post("/", ctl.Submit)
	g.Get("/pending/:familyId", ctl.Pending)
}
