// file: internals/features/finance/payments/controller/payment_controller.go
package controller

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"sepaku_backend/internals/features/finance/payments/dto"
	"sepaku_backend/internals/features/finance/payments/service"
	helper "sepaku_backend/internals/helpers"
)

type PaymentController struct {
	Svc *service.Service
}

func NewPaymentController(svc *service.Service) *PaymentController {
	return &PaymentController{Svc: svc}
}

/* =======================================================================
   CRUD
======================================================================= */

// POST /payments
func (h *PaymentController) Create(c *fiber.Ctx) error {
	actor, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	var req dto.CreatePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json body")
	}
	m, err := h.Svc.Create(c.UserContext(), req, actor)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonCreated(c, "payment created", m)
}

// GET /payments?school_year_id=&account_id=&linked=yes|no
func (h *PaymentController) List(c *fiber.Ctx) error {
	yearID, err := helper.ParseUUIDQuery(c, "school_year_id")
	if err != nil {
		return helper.FromError(c, err)
	}
	accountID, err := helper.ParseUUIDQuery(c, "account_id")
	if err != nil {
		return helper.FromError(c, err)
	}
	linked := strings.ToLower(strings.TrimSpace(c.Query("linked")))
	if linked != dto.LinkedAny && linked != dto.LinkedYes && linked != dto.LinkedNo {
		return helper.JsonError(c, fiber.StatusBadRequest, "linked must be yes or no")
	}

	p := helper.ResolvePaging(c, 50, 500)
	rows, total, err := h.Svc.List(c.UserContext(), dto.ListPaymentsQuery{
		SchoolYearID: yearID,
		AccountID:    accountID,
		Linked:       linked,
		Offset:       p.Offset,
		Limit:        p.Limit,
	})
	if err != nil {
		return helper.FromError(c, err)
	}
	pg := helper.BuildPaginationFromPage(total, p.Page, p.PerPage)
	return helper.JsonList(c, "ok", rows, &pg)
}

// GET /payments/:id
func (h *PaymentController) Get(c *fiber.Ctx) error {
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

// PATCH /payments/:id
func (h *PaymentController) Patch(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	var req dto.PatchPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json body")
	}
	m, err := h.Svc.Patch(c.UserContext(), id, req)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonUpdated(c, "payment updated", m)
}

// DELETE /payments/:id
func (h *PaymentController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	if err := h.Svc.Delete(c.UserContext(), id); err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonDeleted(c, "payment deleted", fiber.Map{"payment_id": id})
}

/* =======================================================================
   Linking & matching
======================================================================= */

// POST /payments/:id/link
func (h *PaymentController) Link(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	var req dto.LinkPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json body")
	}
	m, err := h.Svc.Link(c.UserContext(), id, req.AccountID)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonUpdated(c, "payment linked", m)
}

// POST /payments/:id/unlink
func (h *PaymentController) Unlink(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	m, err := h.Svc.Unlink(c.UserContext(), id)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonUpdated(c, "payment unlinked", m)
}

// POST /payments/:id/auto-link
func (h *PaymentController) AutoLink(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	res, err := h.Svc.AutoLink(c.UserContext(), id)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, string(res.Outcome), res)
}

// POST /payments/auto-link
func (h *PaymentController) AutoLinkAll(c *fiber.Ctx) error {
	var req dto.AutoLinkAllRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json body")
	}
	if req.SchoolYearID == uuid.Nil {
		return helper.JsonValidationError(c, map[string][]string{"school_year_id": {"required"}})
	}
	report, err := h.Svc.AutoLinkAll(c.UserContext(), req.SchoolYearID)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "auto-link finished", report)
}

// GET /payments/candidates?payer=
func (h *PaymentController) Candidates(c *fiber.Ctx) error {
	payer := strings.TrimSpace(c.Query("payer"))
	if payer == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "payer is required")
	}
	rows, err := h.Svc.FindCandidates(c.UserContext(), payer)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "ok", rows)
}

// GET /payments/suggestions?payer=&limit=
func (h *PaymentController) Suggestions(c *fiber.Ctx) error {
	payer := strings.TrimSpace(c.Query("payer"))
	if payer == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "payer is required")
	}
	limit, _ := strconv.Atoi(c.Query("limit", "5"))
	if limit <= 0 || limit > 50 {
		limit = 5
	}
	rows, err := h.Svc.Suggest(c.UserContext(), payer, limit)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "ok", rows)
}
