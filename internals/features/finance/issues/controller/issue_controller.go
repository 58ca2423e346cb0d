package controller

import (
	"github.com/gofiber/fiber/v2"

	"sepaku_backend/internals/features/finance/issues/dto"
	"sepaku_backend/internals/features/finance/issues/service"
	helper "sepaku_backend/internals/helpers"
)

type IssueController struct {
	Svc      *service.Service
	Settings *service.SettingsStore
}

func NewIssueController(svc *service.Service, settings *service.SettingsStore) *IssueController {
	return &IssueController{Svc: svc, Settings: settings}
}

// GET /issues/years/:yearId/summary
func (h *IssueController) Summary(c *fiber.Ctx) error {
	yearID, err := helper.ParseUUIDParam(c, "yearId")
	if err != nil {
		return helper.FromError(c, err)
	}
	out, err := h.Svc.GetIssueSummary(c.UserContext(), yearID)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "ok", out)
}

// GET /issues/years/:yearId/:type
func (h *IssueController) Detect(c *fiber.Ctx) error {
	yearID, err := helper.ParseUUIDParam(c, "yearId")
	if err != nil {
		return helper.FromError(c, err)
	}
	t, ok := dto.ParseIssueType(c.Params("type"))
	if !ok {
		return helper.JsonError(c, fiber.StatusNotFound, "unknown issue type")
	}
	out, err := h.Svc.Detect(c.UserContext(), yearID, t)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "ok", out)
}

// GET /settings
func (h *IssueController) ListSettings(c *fiber.Ctx) error {
	rows, err := h.Settings.List(c.UserContext())
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "ok", rows)
}

// GET /settings/:key
func (h *IssueController) GetSetting(c *fiber.Ctx) error {
	key := c.Params("key")
	v, err := h.Settings.Get(c.UserContext(), key)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "ok", fiber.Map{"key": key, "value": v})
}

// PUT /settings/:key
func (h *IssueController) UpdateSetting(c *fiber.Ctx) error {
	actor, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	var req dto.UpdateSettingRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json body")
	}
	m, err := h.Settings.Set(c.UserContext(), c.Params("key"), req, actor)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonUpdated(c, "setting updated", m)
}
