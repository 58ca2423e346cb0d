package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	accountModel "sepaku_backend/internals/features/finance/accounts/model"
	"sepaku_backend/internals/features/finance/payments/dto"
	"sepaku_backend/internals/features/finance/payments/model"
	helper "sepaku_backend/internals/helpers"
	"sepaku_backend/internals/helpers/apperror"
	"sepaku_backend/internals/helpers/secure"
)

type Repository interface {
	Create(ctx context.Context, m *model.Payment) error
	Save(ctx context.Context, m *model.Payment) error
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Payment, error)
	SetAccount(ctx context.Context, id uuid.UUID, accountID *uuid.UUID) error
	Unlinked(ctx context.Context, schoolYearID uuid.UUID) ([]model.Payment, error)
	List(ctx context.Context, q dto.ListPaymentsQuery) ([]model.Payment, int64, error)
}

type AccountSource interface {
	ListAll(ctx context.Context) ([]accountModel.Account, error)
	GetByID(ctx context.Context, id uuid.UUID) (*accountModel.Account, error)
}

type Service struct {
	repo     Repository
	accounts AccountSource
	validate *validator.Validate
	log      zerolog.Logger
}

func NewService(repo Repository, accounts AccountSource, v *validator.Validate, log zerolog.Logger) *Service {
	return &Service{
		repo:     repo,
		accounts: accounts,
		validate: v,
		log:      log.With().Str("svc", "payments").Logger(),
	}
}

/* =========================
   CRUD
========================= */

func (s *Service) Create(ctx context.Context, req dto.CreatePaymentRequest, actor uuid.UUID) (*model.Payment, error) {
	if err := helper.ValidateStruct(s.validate, req); err != nil {
		return nil, err
	}
	if req.Amount.IsZero() {
		return nil, apperror.ValidationFields("validation failed", map[string][]string{"payment_amount": {"must not be zero"}})
	}
	booked, err := time.Parse(dto.DateLayout, req.BookingDate)
	if err != nil {
		return nil, apperror.Validation("payment_booking_date must be YYYY-MM-DD")
	}

	m := &model.Payment{
		PaymentBookingDate:  booked,
		PaymentPayerRaw:     req.PayerRaw,
		PaymentIBANMasked:   secure.MaskIBAN(req.IBAN),
		PaymentReference:    req.Reference,
		PaymentAmount:       req.Amount.Round(2),
		PaymentMethod:       model.PaymentMethod(req.Method),
		PaymentSchoolYearID: req.SchoolYearID,
	}
	if actor != uuid.Nil {
		m.PaymentCreatedBy = &actor
	}
	if req.AccountID != nil && *req.AccountID != uuid.Nil {
		if _, err := s.accounts.GetByID(ctx, *req.AccountID); err != nil {
			return nil, err
		}
		m.PaymentAccountID = req.AccountID
	}

	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}

	if req.AutoLink && !m.Linked() {
		res, err := s.AutoLink(ctx, m.PaymentID)
		if err != nil {
			return nil, err
		}
		if res.AccountID != nil {
			m.PaymentAccountID = res.AccountID
		}
	}
	return m, nil
}

func (s *Service) Patch(ctx context.Context, id uuid.UUID, req dto.PatchPaymentRequest) (*model.Payment, error) {
	if err := helper.ValidateStruct(s.validate, req); err != nil {
		return nil, err
	}
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.BookingDate != nil {
		booked, err := time.Parse(dto.DateLayout, *req.BookingDate)
		if err != nil {
			return nil, apperror.Validation("payment_booking_date must be YYYY-MM-DD")
		}
		m.PaymentBookingDate = booked
	}
	if req.PayerRaw != nil {
		m.PaymentPayerRaw = *req.PayerRaw
	}
	if req.Reference != nil {
		m.PaymentReference = req.Reference
	}
	if req.Amount != nil {
		if req.Amount.IsZero() {
			return nil, apperror.ValidationFields("validation failed", map[string][]string{"payment_amount": {"must not be zero"}})
		}
		m.PaymentAmount = req.Amount.Round(2)
	}
	if req.Method != nil {
		m.PaymentMethod = model.PaymentMethod(*req.Method)
	}
	if req.SchoolYearID != nil && *req.SchoolYearID != uuid.Nil {
		m.PaymentSchoolYearID = *req.SchoolYearID
	}

	if err := s.repo.Save(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Payment, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, q dto.ListPaymentsQuery) ([]model.Payment, int64, error) {
	return s.repo.List(ctx, q)
}

/* =========================
   Linking
========================= */

func (s *Service) Link(ctx context.Context, id, accountID uuid.UUID) (*model.Payment, error) {
	if _, err := s.accounts.GetByID(ctx, accountID); err != nil {
		return nil, err
	}
	if err := s.repo.SetAccount(ctx, id, &accountID); err != nil {
		return nil, err
	}
	s.log.Info().Str("payment_id", id.String()).Str("account_id", accountID.String()).Msg("payment linked")
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Unlink(ctx context.Context, id uuid.UUID) (*model.Payment, error) {
	if err := s.repo.SetAccount(ctx, id, nil); err != nil {
		return nil, err
	}
	s.log.Info().Str("payment_id", id.String()).Msg("payment unlinked")
	return s.repo.GetByID(ctx, id)
}

/* =========================
   Matcher
========================= */

func (s *Service) FindCandidates(ctx context.Context, payerName string) ([]accountModel.Account, error) {
	accounts, err := s.accounts.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return MatchCandidates(accounts, payerName), nil
}

// AutoLink links the payment when exactly one account matches its payer.
// Already linked payments are left alone.
func (s *Service) AutoLink(ctx context.Context, id uuid.UUID) (dto.AutoLinkResult, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return dto.AutoLinkResult{}, err
	}
	if p.Linked() {
		return dto.AutoLinkResult{PaymentID: id, Outcome: dto.MatchSkipped, AccountID: p.PaymentAccountID}, nil
	}

	candidates, err := s.FindCandidates(ctx, p.PaymentPayerRaw)
	if err != nil {
		return dto.AutoLinkResult{}, err
	}
	res := dto.AutoLinkResult{PaymentID: id, Outcome: Outcome(candidates), Candidates: len(candidates)}
	if res.Outcome == dto.MatchLinked {
		accID := candidates[0].AccountID
		if err := s.repo.SetAccount(ctx, id, &accID); err != nil {
			return dto.AutoLinkResult{}, err
		}
		res.AccountID = &accID
	}
	return res, nil
}

// AutoLinkAll runs the matcher over every unlinked payment of the year in one
// pass, loading accounts once.
func (s *Service) AutoLinkAll(ctx context.Context, schoolYearID uuid.UUID) (dto.AutoLinkReport, error) {
	report := dto.AutoLinkReport{Ambiguous: []uuid.UUID{}, Unmatched: []uuid.UUID{}}

	payments, err := s.repo.Unlinked(ctx, schoolYearID)
	if err != nil {
		return report, err
	}
	accounts, err := s.accounts.ListAll(ctx)
	if err != nil {
		return report, err
	}

	for _, p := range payments {
		candidates := MatchCandidates(accounts, p.PaymentPayerRaw)
		switch Outcome(candidates) {
		case dto.MatchLinked:
			accID := candidates[0].AccountID
			if err := s.repo.SetAccount(ctx, p.PaymentID, &accID); err != nil {
				return report, err
			}
			report.Linked++
		case dto.MatchAmbiguous:
			report.Ambiguous = append(report.Ambiguous, p.PaymentID)
		default:
			report.Unmatched = append(report.Unmatched, p.PaymentID)
		}
	}

	s.log.Info().
		Str("school_year_id", schoolYearID.String()).
		Int("linked", report.Linked).
		Int("ambiguous", len(report.Ambiguous)).
		Int("unmatched", len(report.Unmatched)).
		Msg("auto-link finished")
	return report, nil
}

// Suggest ranks accounts by name distance for manual resolution. It never links.
func (s *Service) Suggest(ctx context.Context, payerName string, limit int) ([]dto.Suggestion, error) {
	accounts, err := s.accounts.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return RankSuggestions(accounts, payerName, limit), nil
}
