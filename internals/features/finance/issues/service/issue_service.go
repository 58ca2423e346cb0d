package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	accountModel "sepaku_backend/internals/features/finance/accounts/model"
	balanceDto "sepaku_backend/internals/features/finance/balances/dto"
	"sepaku_backend/internals/features/finance/issues/dto"
	paymentModel "sepaku_backend/internals/features/finance/payments/model"
	schoolRepo "sepaku_backend/internals/features/finance/school/repository"
	"sepaku_backend/internals/helpers/apperror"
)

type SettingsSource interface {
	Load(ctx context.Context) (Settings, error)
}

type AccountSource interface {
	ListAll(ctx context.Context) ([]accountModel.Account, error)
}

type SchoolSource interface {
	ActiveFamilies(ctx context.Context, yearID uuid.UUID, asOf time.Time) ([]schoolRepo.ActiveFamily, error)
	FamilyNames(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error)
}

type PaymentSource interface {
	Unlinked(ctx context.Context, schoolYearID uuid.UUID) ([]paymentModel.Payment, error)
}

type BalanceSource interface {
	ComputeYear(ctx context.Context, yearID uuid.UUID) ([]balanceDto.Balance, error)
	AcademicYearProgress(ctx context.Context, yearID uuid.UUID) (balanceDto.Progress, error)
}

type Service struct {
	settings SettingsSource
	accounts AccountSource
	school   SchoolSource
	payments PaymentSource
	balances BalanceSource
	now      func() time.Time
	log      zerolog.Logger
}

func NewService(settings SettingsSource, accounts AccountSource, school SchoolSource, payments PaymentSource, balances BalanceSource, log zerolog.Logger) *Service {
	return &Service{
		settings: settings,
		accounts: accounts,
		school:   school,
		payments: payments,
		balances: balances,
		now:      time.Now,
		log:      log.With().Str("svc", "issues").Logger(),
	}
}

func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// run holds what detectors of one request share, loaded at most once.
type run struct {
	s      *Service
	ctx    context.Context
	yearID uuid.UUID
	cfg    Settings

	accounts []accountModel.Account
	balances []balanceDto.Balance
	names    map[uuid.UUID]string
}

func (r *run) loadAccounts() ([]accountModel.Account, error) {
	if r.accounts != nil {
		return r.accounts, nil
	}
	rows, err := r.s.accounts.ListAll(r.ctx)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []accountModel.Account{}
	}
	r.accounts = rows
	return rows, nil
}

func (r *run) loadBalances() ([]balanceDto.Balance, error) {
	if r.balances != nil {
		return r.balances, nil
	}
	rows, err := r.s.balances.ComputeYear(r.ctx, r.yearID)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []balanceDto.Balance{}
	}
	r.balances = rows
	return rows, nil
}

// familyNames resolves display names for the families behind accounts and
// balances loaded so far. Ids already looked up are not queried again.
func (r *run) familyNames() (map[uuid.UUID]string, error) {
	if r.names == nil {
		r.names = map[uuid.UUID]string{}
	}
	seen := map[uuid.UUID]bool{}
	var ids []uuid.UUID
	add := func(id uuid.UUID) {
		if _, known := r.names[id]; known || seen[id] {
			return
		}
		seen[id] = true
		ids = append(ids, id)
	}
	for _, a := range r.accounts {
		add(a.AccountFamilyID)
	}
	for _, b := range r.balances {
		add(b.FamilyID)
	}
	if len(ids) == 0 {
		return r.names, nil
	}
	names, err := r.s.school.FamilyNames(r.ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		r.names[id] = names[id]
	}
	return r.names, nil
}

func (r *run) detect(t dto.IssueType) (dto.IssueList, error) {
	out := dto.IssueList{Type: t, Enabled: r.cfg.Enabled(t), Items: []any{}}
	if !out.Enabled {
		return out, nil
	}

	switch t {
	case dto.IssueDuplicateIBAN, dto.IssueSimilarPayer, dto.IssueDuplicateAccount, dto.IssueStaleMandate:
		accounts, err := r.loadAccounts()
		if err != nil {
			return out, err
		}
		names, err := r.familyNames()
		if err != nil {
			return out, err
		}
		switch t {
		case dto.IssueDuplicateIBAN:
			groups := DuplicateIBAN(accounts, names)
			out.Items, out.Count = groups, len(groups)
		case dto.IssueSimilarPayer:
			groups := SimilarPayer(accounts, names, r.cfg.SimilarPayerAlgorithm)
			out.Items, out.Count, out.Review = groups, len(groups), true
		case dto.IssueDuplicateAccount:
			groups := DuplicateAccount(accounts, names)
			out.Items, out.Count = groups, len(groups)
		default:
			items := StaleMandate(accounts, names, r.cfg.OldMandateYears, r.s.now())
			out.Items, out.Count = items, len(items)
		}

	case dto.IssueMissingAccount:
		accounts, err := r.loadAccounts()
		if err != nil {
			return out, err
		}
		active, err := r.s.school.ActiveFamilies(r.ctx, r.yearID, r.s.now())
		if err != nil {
			return out, err
		}
		items := MissingAccount(active, accounts)
		out.Items, out.Count = items, len(items)

	case dto.IssueLowBalance, dto.IssueHighBalance:
		balances, err := r.loadBalances()
		if err != nil {
			return out, err
		}
		names, err := r.familyNames()
		if err != nil {
			return out, err
		}
		if t == dto.IssueHighBalance {
			items := HighBalance(balances, names, r.cfg.HighBalanceThreshold)
			out.Items, out.Count = items, len(items)
			break
		}
		progress, err := r.s.balances.AcademicYearProgress(r.ctx, r.yearID)
		if err != nil {
			return out, err
		}
		items := LowBalance(balances, names, progress.Proportion, r.cfg.LowBalanceMethod, r.cfg.LowBalanceThreshold)
		out.Items, out.Count = items, len(items)

	case dto.IssueUnlinkedPayment:
		payments, err := r.s.payments.Unlinked(r.ctx, r.yearID)
		if err != nil {
			return out, err
		}
		items := UnlinkedPayments(payments)
		out.Items, out.Count = items, len(items)
	}
	return out, nil
}

func (s *Service) newRun(ctx context.Context, yearID uuid.UUID) (*run, error) {
	cfg, err := s.settings.Load(ctx)
	if err != nil {
		return nil, err
	}
	return &run{s: s, ctx: ctx, yearID: yearID, cfg: cfg}, nil
}

// Detect runs a single detector. A disabled detector returns an empty,
// not-enabled list.
func (s *Service) Detect(ctx context.Context, yearID uuid.UUID, t dto.IssueType) (dto.IssueList, error) {
	if _, ok := dto.ParseIssueType(string(t)); !ok {
		return dto.IssueList{}, apperror.Validation("unknown issue type " + string(t))
	}
	r, err := s.newRun(ctx, yearID)
	if err != nil {
		return dto.IssueList{}, err
	}
	return r.detect(t)
}

// GetIssueSummary counts the findings of every detector for the year.
// Disabled detectors report 0.
func (s *Service) GetIssueSummary(ctx context.Context, yearID uuid.UUID) (map[dto.IssueType]int, error) {
	r, err := s.newRun(ctx, yearID)
	if err != nil {
		return nil, err
	}
	out := make(map[dto.IssueType]int, len(dto.AllIssueTypes))
	for _, t := range dto.AllIssueTypes {
		l, err := r.detect(t)
		if err != nil {
			return nil, err
		}
		out[t] = l.Count
	}
	s.log.Debug().Str("school_year_id", yearID.String()).Interface("summary", out).Msg("issue summary")
	return out, nil
}
