package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	accountModel "sepaku_backend/internals/features/finance/accounts/model"
	"sepaku_backend/internals/features/finance/adjustments/dto"
	"sepaku_backend/internals/features/finance/adjustments/model"
	helper "sepaku_backend/internals/helpers"
	"sepaku_backend/internals/helpers/apperror"
)

type Repository interface {
	CreateAdjustment(ctx context.Context, m *model.Adjustment) error
	SaveAdjustment(ctx context.Context, m *model.Adjustment) error
	DeleteAdjustment(ctx context.Context, id uuid.UUID) error
	GetAdjustment(ctx context.Context, id uuid.UUID) (*model.Adjustment, error)
	ListAdjustments(ctx context.Context, accountID, yearID uuid.UUID) ([]model.Adjustment, error)

	CreateDiscount(ctx context.Context, m *model.Discount) error
	SaveDiscount(ctx context.Context, m *model.Discount) error
	DeleteDiscount(ctx context.Context, id uuid.UUID) error
	GetDiscount(ctx context.Context, id uuid.UUID) (*model.Discount, error)
	ListDiscounts(ctx context.Context, accountID, yearID uuid.UUID) ([]model.Discount, error)
}

type AccountGetter interface {
	GetByID(ctx context.Context, id uuid.UUID) (*accountModel.Account, error)
}

type Service struct {
	repo     Repository
	accounts AccountGetter
	validate *validator.Validate
	log      zerolog.Logger
}

func NewService(repo Repository, accounts AccountGetter, v *validator.Validate, log zerolog.Logger) *Service {
	return &Service{
		repo:     repo,
		accounts: accounts,
		validate: v,
		log:      log.With().Str("svc", "adjustments").Logger(),
	}
}

func amountError(msg string) error {
	return apperror.ValidationFields("validation failed", map[string][]string{"amount": {msg}})
}

func actorPtr(actor uuid.UUID) *uuid.UUID {
	if actor == uuid.Nil {
		return nil
	}
	return &actor
}

/* =========================
   Adjustments
========================= */

func (s *Service) CreateAdjustment(ctx context.Context, accountID uuid.UUID, req dto.CreateAdjustmentRequest, actor uuid.UUID) (*model.Adjustment, error) {
	if err := helper.ValidateStruct(s.validate, req); err != nil {
		return nil, err
	}
	if req.Amount.IsZero() {
		return nil, amountError("must not be zero")
	}
	if _, err := s.accounts.GetByID(ctx, accountID); err != nil {
		return nil, err
	}
	m := &model.Adjustment{
		AdjustmentAccountID:    accountID,
		AdjustmentSchoolYearID: req.SchoolYearID,
		AdjustmentAmount:       req.Amount.Round(2),
		AdjustmentDescription:  req.Description,
		AdjustmentNote:         req.Note,
		AdjustmentCreatedBy:    actorPtr(actor),
	}
	if err := s.repo.CreateAdjustment(ctx, m); err != nil {
		return nil, err
	}
	s.log.Info().Str("account_id", accountID.String()).Str("amount", m.AdjustmentAmount.StringFixed(2)).Msg("adjustment created")
	return m, nil
}

func (s *Service) PatchAdjustment(ctx context.Context, id uuid.UUID, req dto.PatchAdjustmentRequest) (*model.Adjustment, error) {
	if err := helper.ValidateStruct(s.validate, req); err != nil {
		return nil, err
	}
	m, err := s.repo.GetAdjustment(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Amount != nil {
		if req.Amount.IsZero() {
			return nil, amountError("must not be zero")
		}
		m.AdjustmentAmount = req.Amount.Round(2)
	}
	if req.SchoolYearID != nil && *req.SchoolYearID != uuid.Nil {
		m.AdjustmentSchoolYearID = *req.SchoolYearID
	}
	if req.Description != nil {
		m.AdjustmentDescription = *req.Description
	}
	if req.Note != nil {
		m.AdjustmentNote = req.Note
	}
	if err := s.repo.SaveAdjustment(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Service) DeleteAdjustment(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteAdjustment(ctx, id)
}

func (s *Service) ListAdjustments(ctx context.Context, accountID, yearID uuid.UUID) ([]model.Adjustment, error) {
	return s.repo.ListAdjustments(ctx, accountID, yearID)
}

/* =========================
   Discounts
========================= */

func (s *Service) CreateDiscount(ctx context.Context, accountID uuid.UUID, req dto.CreateAdjustmentRequest, actor uuid.UUID) (*model.Discount, error) {
	if err := helper.ValidateStruct(s.validate, req); err != nil {
		return nil, err
	}
	if !req.Amount.IsPositive() {
		return nil, amountError("must be greater than zero")
	}
	if _, err := s.accounts.GetByID(ctx, accountID); err != nil {
		return nil, err
	}
	m := &model.Discount{
		DiscountAccountID:    accountID,
		DiscountSchoolYearID: req.SchoolYearID,
		DiscountAmount:       req.Amount.Round(2),
		DiscountDescription:  req.Description,
		DiscountNote:         req.Note,
		DiscountCreatedBy:    actorPtr(actor),
	}
	if err := s.repo.CreateDiscount(ctx, m); err != nil {
		return nil, err
	}
	s.log.Info().Str("account_id", accountID.String()).Str("amount", m.DiscountAmount.StringFixed(2)).Msg("discount created")
	return m, nil
}

func (s *Service) PatchDiscount(ctx context.Context, id uuid.UUID, req dto.PatchAdjustmentRequest) (*model.Discount, error) {
	if err := helper.ValidateStruct(s.validate, req); err != nil {
		return nil, err
	}
	m, err := s.repo.GetDiscount(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Amount != nil {
		if !req.Amount.IsPositive() {
			return nil, amountError("must be greater than zero")
		}
		m.DiscountAmount = req.Amount.Round(2)
	}
	if req.SchoolYearID != nil && *req.SchoolYearID != uuid.Nil {
		m.DiscountSchoolYearID = *req.SchoolYearID
	}
	if req.Description != nil {
		m.DiscountDescription = *req.Description
	}
	if req.Note != nil {
		m.DiscountNote = req.Note
	}
	if err := s.repo.SaveDiscount(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Service) DeleteDiscount(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteDiscount(ctx, id)
}

func (s *Service) ListDiscounts(ctx context.Context, accountID, yearID uuid.UUID) ([]model.Discount, error) {
	return s.repo.ListDiscounts(ctx, accountID, yearID)
}
