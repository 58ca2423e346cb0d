package route

import (
	"github.com/gofiber/fiber/v2"

	"sepaku_backend/internals/features/finance/issues/controller"
)

func IssueAdminRoutes(r fiber.Router, ctl *controller.IssueController) {
	g := r.Group("/issues")
	g.Get("/years/:yearId/summary", ctl.Summary)
	g.Get("/years/:yearId/:type", ctl.Detect)

	s := r.Group("/settings")
	s.Get("/", ctl.ListSettings)
	s.Get("/:key", ctl.GetSetting)
	s.Put("/:key", ctl.UpdateSetting)
}
