package details

import (
	"github.com/gofiber/fiber/v2"

	accountController "sepaku_backend/internals/features/finance/accounts/controller"
	AccountRoute "sepaku_backend/internals/features/finance/accounts/route"
	adjustmentController "sepaku_backend/internals/features/finance/adjustments/controller"
	AdjustmentRoute "sepaku_backend/internals/features/finance/adjustments/route"
	balanceController "sepaku_backend/internals/features/finance/balances/controller"
	BalanceRoute "sepaku_backend/internals/features/finance/balances/route"
	customFieldController "sepaku_backend/internals/features/finance/custom_fields/controller"
	CustomFieldRoute "sepaku_backend/internals/features/finance/custom_fields/route"
	issueController "sepaku_backend/internals/features/finance/issues/controller"
	IssueRoute "sepaku_backend/internals/features/finance/issues/route"
	paymentController "sepaku_backend/internals/features/finance/payments/controller"
	PaymentRoute "sepaku_backend/internals/features/finance/payments/route"
	snapshotController "sepaku_backend/internals/features/finance/snapshots/controller"
	SnapshotRoute "sepaku_backend/internals/features/finance/snapshots/route"
	updateRequestController "sepaku_backend/internals/features/finance/update_requests/controller"
	UpdateRequestRoute "sepaku_backend/internals/features/finance/update_requests/route"
)

type FinanceControllers struct {
	Accounts       *accountController.AccountController
	Adjustments    *adjustmentController.AdjustmentController
	Balances       *balanceController.BalanceController
	CustomFields   *customFieldController.CustomFieldController
	Issues         *issueController.IssueController
	Payments       *paymentController.PaymentController
	Snapshots      *snapshotController.SnapshotController
	UpdateRequests *updateRequestController.UpdateRequestController
}

// FinanceAdminRoutes mounts the staff API on /api/a/finance.
func FinanceAdminRoutes(r fiber.Router, ctl FinanceControllers) {
	CustomFieldRoute.CustomFieldAdminRoutes(r, ctl.CustomFields)
	AccountRoute.AccountAdminRoutes(r, ctl.Accounts)
	AdjustmentRoute.AdjustmentAdminRoutes(r, ctl.Adjustments)
	PaymentRoute.PaymentAdminRoutes(r, ctl.Payments)
	BalanceRoute.BalanceAdminRoutes(r, ctl.Balances)
	IssueRoute.IssueAdminRoutes(r, ctl.Issues)
	SnapshotRoute.SnapshotAdminRoutes(r, ctl.Snapshots)
	UpdateRequestRoute.UpdateRequestAdminRoutes(r, ctl.UpdateRequests)
}

// FinanceUserRoutes mounts the parent API on /api/u/finance.
func FinanceUserRoutes(r fiber.Router, ctl FinanceControllers) {
	UpdateRequestRoute.UpdateRequestUserRoutes(r, ctl.UpdateRequests)
}
