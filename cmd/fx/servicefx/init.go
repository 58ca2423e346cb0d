package servicefx

import (
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"go.uber.org/fx"

	accountRepo "sepaku_backend/internals/features/finance/accounts/repository"
	accountService "sepaku_backend/internals/features/finance/accounts/service"
	adjustmentRepo "sepaku_backend/internals/features/finance/adjustments/repository"
	adjustmentService "sepaku_backend/internals/features/finance/adjustments/service"
	balanceRepo "sepaku_backend/internals/features/finance/balances/repository"
	balanceService "sepaku_backend/internals/features/finance/balances/service"
	customFieldRepo "sepaku_backend/internals/features/finance/custom_fields/repository"
	customFieldService "sepaku_backend/internals/features/finance/custom_fields/service"
	issueRepo "sepaku_backend/internals/features/finance/issues/repository"
	issueService "sepaku_backend/internals/features/finance/issues/service"
	paymentRepo "sepaku_backend/internals/features/finance/payments/repository"
	paymentService "sepaku_backend/internals/features/finance/payments/service"
	schoolRepo "sepaku_backend/internals/features/finance/school/repository"
	snapshotRepo "sepaku_backend/internals/features/finance/snapshots/repository"
	snapshotService "sepaku_backend/internals/features/finance/snapshots/service"
	updateRequestRepo "sepaku_backend/internals/features/finance/update_requests/repository"
	updateRequestService "sepaku_backend/internals/features/finance/update_requests/service"
	"sepaku_backend/internals/helpers/secure"
)

var Module = fx.Provide(
	provideCustomFieldService,
	provideAccountService,
	provideAdjustmentService,
	providePaymentService,
	provideBalanceService,
	provideSettingsStore,
	provideIssueService,
	provideSnapshotService,
	provideUpdateRequestService,
)

func provideCustomFieldService(repo *customFieldRepo.CustomFieldRepository, v *validator.Validate, log zerolog.Logger) *customFieldService.Service {
	return customFieldService.NewService(repo, v, log)
}

func provideAccountService(
	repo *accountRepo.AccountRepository,
	fields *customFieldService.Service,
	school *schoolRepo.SchoolRepository,
	v *validator.Validate,
	log zerolog.Logger,
) *accountService.Service {
	return accountService.NewService(repo, fields, school, v, log)
}

func provideAdjustmentService(repo *adjustmentRepo.AdjustmentRepository, accounts *accountRepo.AccountRepository, v *validator.Validate, log zerolog.Logger) *adjustmentService.Service {
	return adjustmentService.NewService(repo, accounts, v, log)
}

func providePaymentService(repo *paymentRepo.PaymentRepository, accounts *accountRepo.AccountRepository, v *validator.Validate, log zerolog.Logger) *paymentService.Service {
	return paymentService.NewService(repo, accounts, v, log)
}

func provideBalanceService(repo *balanceRepo.BalanceRepository, school *schoolRepo.SchoolRepository, log zerolog.Logger) *balanceService.Service {
	return balanceService.NewService(repo, school, log)
}

func provideSettingsStore(repo *issueRepo.SettingsRepository, v *validator.Validate, log zerolog.Logger) *issueService.SettingsStore {
	return issueService.NewSettingsStore(repo, v, log)
}

func provideIssueService(
	settings *issueService.SettingsStore,
	accounts *accountRepo.AccountRepository,
	school *schoolRepo.SchoolRepository,
	payments *paymentRepo.PaymentRepository,
	balances *balanceService.Service,
	log zerolog.Logger,
) *issueService.Service {
	return issueService.NewService(settings, accounts, school, payments, balances, log)
}

func provideSnapshotService(repo *snapshotRepo.SnapshotRepository, balances *balanceService.Service, school *schoolRepo.SchoolRepository, log zerolog.Logger) *snapshotService.Service {
	return snapshotService.NewService(repo, balances, school, log)
}

func provideUpdateRequestService(
	repo *updateRequestRepo.UpdateRequestRepository,
	cipher *secure.Cipher,
	accounts *accountRepo.AccountRepository,
	school *schoolRepo.SchoolRepository,
	fields *customFieldService.Service,
	v *validator.Validate,
	log zerolog.Logger,
) *updateRequestService.Service {
	return updateRequestService.NewService(repo, cipher, accounts, school, fields, v, log)
}
