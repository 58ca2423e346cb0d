package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"sepaku_backend/internals/features/finance/snapshots/dto"
	"sepaku_backend/internals/features/finance/snapshots/service"
	helper "sepaku_backend/internals/helpers"
	"sepaku_backend/internals/helpers/apperror"
)

type SnapshotController struct {
	Svc *service.Service
}

func NewSnapshotController(svc *service.Service) *SnapshotController {
	return &SnapshotController{Svc: svc}
}

func familyYear(c *fiber.Ctx) (uuid.UUID, uuid.UUID, error) {
	familyID, err := helper.ParseUUIDParam(c, "familyId")
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	yearID, err := helper.ParseUUIDParam(c, "yearId")
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	return familyID, yearID, nil
}

// POST /snapshots
func (h *SnapshotController) Create(c *fiber.Ctx) error {
	actor, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	var req dto.CreateSnapshotRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json body")
	}
	fields := map[string][]string{}
	if req.FamilyID == uuid.Nil {
		fields["family_id"] = []string{"required"}
	}
	if req.SchoolYearID == uuid.Nil {
		fields["school_year_id"] = []string{"required"}
	}
	if len(fields) > 0 {
		return helper.FromError(c, apperror.ValidationFields("validation failed", fields))
	}

	id, err := h.Svc.Create(c.UserContext(), req.FamilyID, req.SchoolYearID, actor)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonCreated(c, "snapshot created", fiber.Map{"id": id})
}

// GET /snapshots/families/:familyId/years/:yearId
func (h *SnapshotController) List(c *fiber.Ctx) error {
	familyID, yearID, err := familyYear(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	rows, err := h.Svc.List(c.UserContext(), familyID, yearID)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "ok", rows)
}

// GET /snapshots/families/:familyId/years/:yearId/latest
func (h *SnapshotController) Latest(c *fiber.Ctx) error {
	familyID, yearID, err := familyYear(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	m, err := h.Svc.GetLatest(c.UserContext(), familyID, yearID)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "ok", m)
}

// GET /snapshots/families/:familyId/years/:yearId/compare
func (h *SnapshotController) Compare(c *fiber.Ctx) error {
	familyID, yearID, err := familyYear(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	out, err := h.Svc.CompareToLatest(c.UserContext(), familyID, yearID)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "ok", out)
}
