package controller

import (
	"github.com/gofiber/fiber/v2"

	"sepaku_backend/internals/features/finance/accounts/dto"
	"sepaku_backend/internals/features/finance/accounts/service"
	helper "sepaku_backend/internals/helpers"
)

type AccountController struct {
	Svc *service.Service
}

func NewAccountController(svc *service.Service) *AccountController {
	return &AccountController{Svc: svc}
}

// POST /accounts
func (h *AccountController) Create(c *fiber.Ctx) error {
	actor, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	var req dto.CreateAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json body")
	}
	m, err := h.Svc.Create(c.UserContext(), req, actor)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonCreated(c, "account created", m)
}

// GET /accounts?q=&family_id=&page=&per_page=
func (h *AccountController) List(c *fiber.Ctx) error {
	familyID, err := helper.ParseUUIDQuery(c, "family_id")
	if err != nil {
		return helper.FromError(c, err)
	}
	p := helper.ResolvePaging(c, 20, 200)
	rows, total, err := h.Svc.List(c.UserContext(), dto.ListAccountsQuery{
		Q:        c.Query("q"),
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

// GET /accounts/:id
func (h *AccountController) Get(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	m, err := h.Svc.Get(c.UserContext(), id)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "ok", m)
}

// GET /accounts/family/:familyId
func (h *AccountController) ListByFamily(c *fiber.Ctx) error {
	familyID, err := helper.ParseUUIDParam(c, "familyId")
	if err != nil {
		return helper.FromError(c, err)
	}
	rows, err := h.Svc.ListByFamily(c.UserContext(), familyID)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "ok", rows)
}

// PATCH /accounts/:id
func (h *AccountController) Patch(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	var req dto.PatchAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json body")
	}
	m, err := h.Svc.Patch(c.UserContext(), id, req)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonUpdated(c, "account updated", m)
}

// DELETE /accounts/:id
func (h *AccountController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	if err := h.Svc.Delete(c.UserContext(), id); err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonDeleted(c, "account deleted", fiber.Map{"account_id": id})
}
