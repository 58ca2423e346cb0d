package route

import (
	"github.com/gofiber/fiber/v2"

	"sepaku_backend/internals/features/finance/adjustments/controller"
)

// AdjustmentAdminRoutes mounts under /api/a/finance.
func AdjustmentAdminRoutes(r fiber.Router, ctl *controller.AdjustmentController) {
	byAccount := r.Group("/accounts/:id")
	byAccount.Post("/adjustments", ctl.CreateAdjustment)
	byAccount.Get("/adjustments", ctl.ListAdjustments)
	byAccount.Post("/discounts", ctl.CreateDiscount)
	byAccount.Get("/discounts", ctl.ListDiscounts)

	adj := r.Group("/adjustments")
	adj.Patch("/:id", ctl.PatchAdjustment)
	adj.Delete("/:id", ctl.DeleteAdjustment)

	disc := r.Group("/discounts")
	disc.Patch("/:id", ctl.PatchDiscount)
	disc.Delete("/:id", ctl.DeleteDiscount)
}
