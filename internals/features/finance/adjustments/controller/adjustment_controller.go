package controller

import (
	"github.com/gofiber/fiber/v2"

	"sepaku_backend/internals/features/finance/adjustments/dto"
	"sepaku_backend/internals/features/finance/adjustments/service"
	helper "sepaku_backend/internals/helpers"
)

type AdjustmentController struct {
	Svc *service.Service
}

func NewAdjustmentController(svc *service.Service) *AdjustmentController {
	return &AdjustmentController{Svc: svc}
}

/* ===================== Adjustments ===================== */

// POST /accounts/:id/adjustments
func (h *AdjustmentController) CreateAdjustment(c *fiber.Ctx) error {
	actor, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	accountID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	var req dto.CreateAdjustmentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json body")
	}
	m, err := h.Svc.CreateAdjustment(c.UserContext(), accountID, req, actor)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonCreated(c, "adjustment created", m)
}

// GET /accounts/:id/adjustments?school_year_id=
func (h *AdjustmentController) ListAdjustments(c *fiber.Ctx) error {
	accountID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	yearID, err := helper.ParseUUIDQuery(c, "school_year_id")
	if err != nil {
		return helper.FromError(c, err)
	}
	rows, err := h.Svc.ListAdjustments(c.UserContext(), accountID, yearID)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "ok", rows)
}

// PATCH /adjustments/:id
func (h *AdjustmentController) PatchAdjustment(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	var req dto.PatchAdjustmentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json body")
	}
	m, err := h.Svc.PatchAdjustment(c.UserContext(), id, req)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonUpdated(c, "adjustment updated", m)
}

// DELETE /adjustments/:id
func (h *AdjustmentController) DeleteAdjustment(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	if err := h.Svc.DeleteAdjustment(c.UserContext(), id); err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonDeleted(c, "adjustment deleted", fiber.Map{"adjustment_id": id})
}

/* ===================== Discounts ===================== */

// POST /accounts/:id/discounts
func (h *AdjustmentController) CreateDiscount(c *fiber.Ctx) error {
	actor, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	accountID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	var req dto.CreateAdjustmentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json body")
	}
	m, err := h.Svc.CreateDiscount(c.UserContext(), accountID, req, actor)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonCreated(c, "discount created", m)
}

// GET /accounts/:id/discounts?school_year_id=
func (h *AdjustmentController) ListDiscounts(c *fiber.Ctx) error {
	accountID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	yearID, err := helper.ParseUUIDQuery(c, "school_year_id")
	if err != nil {
		return helper.FromError(c, err)
	}
	rows, err := h.Svc.ListDiscounts(c.UserContext(), accountID, yearID)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "ok", rows)
}

// PATCH /discounts/:id
func (h *AdjustmentController) PatchDiscount(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	var req dto.PatchAdjustmentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json body")
	}
	m, err := h.Svc.PatchDiscount(c.UserContext(), id, req)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonUpdated(c, "discount updated", m)
}

// DELETE /discounts/:id
func (h *AdjustmentController) DeleteDiscount(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	if err := h.Svc.DeleteDiscount(c.UserContext(), id); err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonDeleted(c, "discount deleted", fiber.Map{"discount_id": id})
}
