package controller

import (
	"github.com/gofiber/fiber/v2"

	"sepaku_backend/internals/features/finance/custom_fields/dto"
	"sepaku_backend/internals/features/finance/custom_fields/service"
	helper "sepaku_backend/internals/helpers"
)

type CustomFieldController struct {
	Svc *service.Service
}

func NewCustomFieldController(svc *service.Service) *CustomFieldController {
	return &CustomFieldController{Svc: svc}
}

// GET /custom-fields
func (h *CustomFieldController) List(c *fiber.Ctx) error {
	rows, err := h.Svc.List(c.UserContext())
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "ok", rows)
}

// POST /custom-fields
func (h *CustomFieldController) Create(c *fiber.Ctx) error {
	var req dto.CreateCustomFieldRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json body")
	}
	m, err := h.Svc.Create(c.UserContext(), req)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonCreated(c, "custom field created", m)
}
