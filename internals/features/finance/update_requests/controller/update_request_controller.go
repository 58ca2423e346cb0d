package controller

import (
	"github.com/gofiber/fiber/v2"

	"sepaku_backend/internals/features/finance/update_requests/dto"
	"sepaku_backend/internals/features/finance/update_requests/model"
	"sepaku_backend/internals/features/finance/update_requests/service"
	helper "sepaku_backend/internals/helpers"
)

type UpdateRequestController struct {
	Svc *service.Service
}

func NewUpdateRequestController(svc *service.Service) *UpdateRequestController {
	return &UpdateRequestController{Svc: svc}
}

func actorFrom(c *fiber.Ctx) (dto.Actor, error) {
	uid, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return dto.Actor{}, err
	}
	return dto.Actor{
		UserID:    uid,
		IP:        c.IP(),
		UserAgent: c.Get(fiber.HeaderUserAgent),
		Context:   helper.ClientMeta(c),
	}, nil
}

/* =========================================================
   PARENT
========================================================= */

// POST /update-requests
func (h *UpdateRequestController) Submit(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	var req dto.SubmitRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json body")
	}
	v, err := h.Svc.Submit(c.UserContext(), req, actor)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonCreated(c, "update request submitted", fiber.Map{
		"id":     v.ID,
		"status": v.Status,
	})
}

// GET /update-requests/pending/:familyId
func (h *UpdateRequestController) Pending(c *fiber.Ctx) error {
	familyID, err := helper.ParseUUIDParam(c, "familyId")
	if err != nil {
		return helper.FromError(c, err)
	}
	ok, err := h.Svc.HasPending(c.UserContext(), familyID)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "ok", fiber.Map{"family_id": familyID, "pending": ok})
}

/* =========================================================
   ADMIN
========================================================= */

// GET /update-requests?status=&family_id=&page=&per_page=
func (h *UpdateRequestController) List(c *fiber.Ctx) error {
	familyID, err := helper.ParseUUIDQuery(c, "family_id")
	if err != nil {
		return helper.FromError(c, err)
	}
	p := helper.ResolvePaging(c, 20, 100)
	rows, total, err := h.Svc.List(c.UserContext(), dto.ListQuery{
		Status:   model.Status(c.Query("status")),
		FamilyID: familyID,
		Offset:   p.Offset,
		Limit:    p.Limit,
	})
	if err != nil {
		return helper.FromError(c, err)
	}
	pg := helper.BuildPaginationFromPage(total, p.Page, p.PerPage)
	return helper.JsonList(c, "ok", rows, &pg)
}

// GET /update-requests/:id
func (h *UpdateRequestController) Get(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	v, err := h.Svc.GetByID(c.UserContext(), id)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "ok", v)
}

func (h *UpdateRequestController) decision(c *fiber.Ctx) (dto.Actor, dto.DecisionRequest, error) {
	actor, err := actorFrom(c)
	if err != nil {
		return actor, dto.DecisionRequest{}, err
	}
	var req dto.DecisionRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return actor, req, fiber.NewError(fiber.StatusBadRequest, "invalid json body")
		}
	}
	return actor, req, nil
}

// POST /update-requests/:id/approve
func (h *UpdateRequestController) Approve(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	actor, req, err := h.decision(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	v, err := h.Svc.Approve(c.UserContext(), id, req.Note, actor)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonUpdated(c, "update request approved", v)
}

// POST /update-requests/:id/reject
func (h *UpdateRequestController) Reject(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	actor, req, err := h.decision(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	v, err := h.Svc.Reject(c.UserContext(), id, req.Note, actor)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonUpdated(c, "update request rejected", v)
}
