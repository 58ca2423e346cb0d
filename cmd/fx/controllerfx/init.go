package controllerfx

import (
	"go.uber.org/fx"

	accountController "sepaku_backend/internals/features/finance/accounts/controller"
	adjustmentController "sepaku_backend/internals/features/finance/adjustments/controller"
	balanceController "sepaku_backend/internals/features/finance/balances/controller"
	customFieldController "sepaku_backend/internals/features/finance/custom_fields/controller"
	issueController "sepaku_backend/internals/features/finance/issues/controller"
	paymentController "sepaku_backend/internals/features/finance/payments/controller"
	snapshotController "sepaku_backend/internals/features/finance/snapshots/controller"
	updateRequestController "sepaku_backend/internals/features/finance/update_requests/controller"
	routeDetails "sepaku_backend/internals/route/details"
)

var Module = fx.Options(
	fx.Provide(accountController.NewAccountController),
	fx.Provide(adjustmentController.NewAdjustmentController),
	fx.Provide(balanceController.NewBalanceController),
	fx.Provide(customFieldController.NewCustomFieldController),
	fx.Provide(issueController.NewIssueController),
	fx.Provide(paymentController.NewPaymentController),
	fx.Provide(snapshotController.NewSnapshotController),
	fx.Provide(updateRequestController.NewUpdateRequestController),
	fx.Provide(provideFinanceControllers),
)

type financeParams struct {
	fx.In

	Accounts       *accountController.AccountController
	Adjustments    *adjustmentController.AdjustmentController
	Balances       *balanceController.BalanceController
	CustomFields   *customFieldController.CustomFieldController
	Issues         *issueController.IssueController
	Payments       *paymentController.PaymentController
	Snapshots      *snapshotController.SnapshotController
	UpdateRequests *updateRequestController.UpdateRequestController
}

func provideFinanceControllers(p financeParams) routeDetails.FinanceControllers {
	return routeDetails.FinanceControllers{
		Accounts:       p.Accounts,
		Adjustments:    p.Adjustments,
		Balances:       p.Balances,
		CustomFields:   p.CustomFields,
		Issues:         p.Issues,
		Payments:       p.Payments,
		Snapshots:      p.Snapshots,
		UpdateRequests: p.UpdateRequests,
	}
}
