package controller

import (
	"github.com/gofiber/fiber/v2"

	"sepaku_backend/internals/features/finance/balances/service"
	helper "sepaku_backend/internals/helpers"
)

type BalanceController struct {
	Svc *service.Service
}

func NewBalanceController(svc *service.Service) *BalanceController {
	return &BalanceController{Svc: svc}
}

// GET /balances/families/:familyId/years/:yearId
func (h *BalanceController) Family(c *fiber.Ctx) error {
	familyID, err := helper.ParseUUIDParam(c, "familyId")
	if err != nil {
		return helper.FromError(c, err)
	}
	yearID, err := helper.ParseUUIDParam(c, "yearId")
	if err != nil {
		return helper.FromError(c, err)
	}
	b, err := h.Svc.ComputeFamilyBalance(c.UserContext(), familyID, yearID)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "ok", b)
}

// GET /balances/years/:yearId
func (h *BalanceController) Year(c *fiber.Ctx) error {
	yearID, err := helper.ParseUUIDParam(c, "yearId")
	if err != nil {
		return helper.FromError(c, err)
	}
	rows, err := h.Svc.ComputeYear(c.UserContext(), yearID)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "ok", rows)
}

// GET /balances/years/:yearId/progress
func (h *BalanceController) Progress(c *fiber.Ctx) error {
	yearID, err := helper.ParseUUIDParam(c, "yearId")
	if err != nil {
		return helper.FromError(c, err)
	}
	p, err := h.Svc.AcademicYearProgress(c.UserContext(), yearID)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "ok", p)
}
