package repositoryfx

import (
	"go.uber.org/fx"

	accountRepo "sepaku_backend/internals/features/finance/accounts/repository"
	adjustmentRepo "sepaku_backend/internals/features/finance/adjustments/repository"
	balanceRepo "sepaku_backend/internals/features/finance/balances/repository"
	customFieldRepo "sepaku_backend/internals/features/finance/custom_fields/repository"
	issueRepo "sepaku_backend/internals/features/finance/issues/repository"
	paymentRepo "sepaku_backend/internals/features/finance/payments/repository"
	schoolRepo "sepaku_backend/internals/features/finance/school/repository"
	snapshotRepo "sepaku_backend/internals/features/finance/snapshots/repository"
	updateRequestRepo "sepaku_backend/internals/features/finance/update_requests/repository"
)

var Module = fx.Options(
	fx.Provide(schoolRepo.NewSchoolRepository),
	fx.Provide(customFieldRepo.NewCustomFieldRepository),
	fx.Provide(accountRepo.NewAccountRepository),
	fx.Provide(adjustmentRepo.NewAdjustmentRepository),
	fx.Provide(paymentRepo.NewPaymentRepository),
	fx.Provide(balanceRepo.NewBalanceRepository),
	fx.Provide(issueRepo.NewSettingsRepository),
	fx.Provide(snapshotRepo.NewSnapshotRepository),
	fx.Provide(updateRequestRepo.NewUpdateRequestRepository),
)
