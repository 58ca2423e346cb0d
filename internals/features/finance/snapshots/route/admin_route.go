package route

import (
	"github.com/gofiber/fiber/v2"

	"sepaku_backend/internals/features/finance/snapshots/controller"
)

func SnapshotAdminRoutes(r fiber.Router, ctl *controller.SnapshotController) {
	g := r.Group("/snapshots")
	g.Post("/", ctl.Create)
	g.Get("/families/:familyId/years/:yearId", ctl.List)
	g.Get("/families/:familyId/years/:yearId/latest", ctl.Latest)
	g.Get("/families/:familyId/years/:yearId/compare", ctl.Compare)
}
