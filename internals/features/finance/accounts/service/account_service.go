package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"

	"sepaku_backend/internals/features/finance/accounts/dto"
	"sepaku_backend/internals/features/finance/accounts/model"
	helper "sepaku_backend/internals/helpers"
	"sepaku_backend/internals/helpers/apperror"
	"sepaku_backend/internals/helpers/secure"
)

type Repository interface {
	Create(ctx context.Context, m *model.Account) error
	Save(ctx context.Context, m *model.Account) error
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Account, error)
	ListByFamily(ctx context.Context, familyID uuid.UUID) ([]model.Account, error)
	List(ctx context.Context, q dto.ListAccountsQuery) ([]model.Account, int64, error)
}

type CustomFieldValidator interface {
	Validate(ctx context.Context, values map[string]any) (datatypes.JSON, error)
}

type FamilyChecker interface {
	FamilyExists(ctx context.Context, id uuid.UUID) (bool, error)
}

type Service struct {
	repo     Repository
	fields   CustomFieldValidator
	families FamilyChecker
	validate *validator.Validate
	log      zerolog.Logger
}

func NewService(repo Repository, fields CustomFieldValidator, families FamilyChecker, v *validator.Validate, log zerolog.Logger) *Service {
	return &Service{
		repo:     repo,
		fields:   fields,
		families: families,
		validate: v,
		log:      log.With().Str("svc", "accounts").Logger(),
	}
}

func (s *Service) Create(ctx context.Context, req dto.CreateAccountRequest, actor uuid.UUID) (*model.Account, error) {
	if err := helper.ValidateStruct(s.validate, req); err != nil {
		return nil, err
	}
	ok, err := s.families.FamilyExists(ctx, req.FamilyID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperror.NotFound("family")
	}
	signed, err := dto.ParseDate(req.SignedDate)
	if err != nil {
		return nil, apperror.Validation("account_signed_date must be YYYY-MM-DD")
	}
	custom, err := s.fields.Validate(ctx, req.CustomFields)
	if err != nil {
		return nil, err
	}

	m := &model.Account{
		AccountFamilyID:     req.FamilyID,
		AccountPayer:        req.Payer,
		AccountIBANMasked:   secure.MaskIBAN(req.IBAN),
		AccountBIC:          secure.MaskBIC(req.BIC),
		AccountSignedDate:   signed,
		AccountNote:         dto.TrimPtr(req.Note),
		AccountCustomFields: custom,
	}
	if actor != uuid.Nil {
		m.AccountCreatedBy = &actor
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	s.log.Info().Str("account_id", m.AccountID.String()).Str("family_id", m.AccountFamilyID.String()).Msg("account created")
	return m, nil
}

func (s *Service) Patch(ctx context.Context, id uuid.UUID, req dto.PatchAccountRequest) (*model.Account, error) {
	if err := helper.ValidateStruct(s.validate, req); err != nil {
		return nil, err
	}
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Payer != nil {
		m.AccountPayer = *req.Payer
	}
	if req.IBAN != nil {
		m.AccountIBANMasked = secure.MaskIBAN(req.IBAN)
	}
	if req.SignedDate != nil {
		signed, err := dto.ParseDate(req.SignedDate)
		if err != nil {
			return nil, apperror.Validation("account_signed_date must be YYYY-MM-DD")
		}
		m.AccountSignedDate = signed
	}
	if req.Note != nil {
		m.AccountNote = dto.TrimPtr(req.Note)
	}
	if req.CustomFields != nil {
		custom, err := s.fields.Validate(ctx, *req.CustomFields)
		if err != nil {
			return nil, err
		}
		m.AccountCustomFields = custom
	}
	m.AccountBIC = nil

	if err := s.repo.Save(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("account_id", id.String()).Msg("account deleted")
	return nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Account, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByFamily(ctx context.Context, familyID uuid.UUID) ([]model.Account, error) {
	return s.repo.ListByFamily(ctx, familyID)
}

func (s *Service) List(ctx context.Context, q dto.ListAccountsQuery) ([]model.Account, int64, error) {
	return s.repo.List(ctx, q)
}
