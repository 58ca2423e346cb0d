package route

import (
	"github.com/gofiber/fiber/v2"

	"sepaku_backend/internals/features/finance/payments/controller"
)

/*
Admin routes: Payments
Mounted under /api/a/finance. Static paths are registered before /:id.
*/
func PaymentAdminRoutes(r fiber.Router, ctl *controller.PaymentController) {
	pay := r.Group("/payments")

	pay.Post("/", ctl.Create)
	pay.Get("/", ctl.List)

	pay.Post("/auto-link", ctl.AutoLinkAll)
	pay.Get("/candidates", ctl.Candidates)
	pay.Get("/suggestions", ctl.Suggestions)

	pay.Get("/:id", ctl.Get)
	pay.Patch("/:id", ctl.Patch)
	pay.Delete("/:id", ctl.Delete)
	pay.Post("/:id/link", ctl.Link)
	pay.Post("/:id/unlink", ctl.Unlink)
	pay.Post("/:id/auto-link", ctl.AutoLink)
}
