package service

import (
	"context"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	balanceDto "sepaku_backend/internals/features/finance/balances/dto"
	"sepaku_backend/internals/features/finance/snapshots/dto"
	"sepaku_backend/internals/features/finance/snapshots/model"
	"sepaku_backend/internals/helpers/apperror"
)

// changeEpsilon is the smallest balance movement reported as a change.
var changeEpsilon = decimal.New(1, -2)

type Repository interface {
	Create(ctx context.Context, m *model.BalanceSnapshot) error
	Latest(ctx context.Context, familyID, yearID uuid.UUID) (*model.BalanceSnapshot, error)
	List(ctx context.Context, familyID, yearID uuid.UUID) ([]model.BalanceSnapshot, error)
}

type BalanceComputer interface {
	ComputeFamilyBalance(ctx context.Context, familyID, yearID uuid.UUID) (balanceDto.Balance, error)
}

type FamilyChecker interface {
	FamilyExists(ctx context.Context, id uuid.UUID) (bool, error)
}

type Service struct {
	repo     Repository
	balances BalanceComputer
	families FamilyChecker
	log      zerolog.Logger
}

func NewService(repo Repository, balances BalanceComputer, families FamilyChecker, log zerolog.Logger) *Service {
	return &Service{
		repo:     repo,
		balances: balances,
		families: families,
		log:      log.With().Str("svc", "snapshots").Logger(),
	}
}

// Create stores the family's current balance with all its line items.
func (s *Service) Create(ctx context.Context, familyID, yearID, actorID uuid.UUID) (uuid.UUID, error) {
	ok, err := s.families.FamilyExists(ctx, familyID)
	if err != nil {
		return uuid.Nil, err
	}
	if !ok {
		return uuid.Nil, apperror.NotFound("family")
	}
	b, err := s.balances.ComputeFamilyBalance(ctx, familyID, yearID)
	if err != nil {
		return uuid.Nil, err
	}
	items, err := sonic.Marshal(dto.LineItems{Fees: b.Fees, Payments: b.Payments, Adjustments: b.Adjustments})
	if err != nil {
		return uuid.Nil, apperror.Storage("encode snapshot line items", err)
	}

	m := &model.BalanceSnapshot{
		BalanceSnapshotFamilyID:         familyID,
		BalanceSnapshotSchoolYearID:     yearID,
		BalanceSnapshotBalance:          b.Balance,
		BalanceSnapshotTotalFees:        b.TotalFees,
		BalanceSnapshotTotalPayments:    b.TotalPayments,
		BalanceSnapshotTotalAdjustments: b.TotalAdjustments,
		BalanceSnapshotLineItems:        datatypes.JSON(items),
	}
	if actorID != uuid.Nil {
		m.BalanceSnapshotCreatedBy = &actorID
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return uuid.Nil, err
	}
	s.log.Info().
		Str("snapshot_id", m.BalanceSnapshotID.String()).
		Str("family_id", familyID.String()).
		Str("balance", b.Balance.StringFixed(2)).
		Msg("balance snapshot created")
	return m.BalanceSnapshotID, nil
}

func (s *Service) GetLatest(ctx context.Context, familyID, yearID uuid.UUID) (*model.BalanceSnapshot, error) {
	m, err := s.repo.Latest(ctx, familyID, yearID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, apperror.NotFound("balance snapshot")
	}
	return m, nil
}

// CompareToLatest recomputes the balance and compares it with the newest
// snapshot. Reads only; calling it repeatedly gives the same answer.
func (s *Service) CompareToLatest(ctx context.Context, familyID, yearID uuid.UUID) (dto.Comparison, error) {
	b, err := s.balances.ComputeFamilyBalance(ctx, familyID, yearID)
	if err != nil {
		return dto.Comparison{}, err
	}
	out := dto.Comparison{
		FamilyID:     familyID,
		SchoolYearID: yearID,
		Current:      b.Balance,
		Changed:      true,
	}

	latest, err := s.repo.Latest(ctx, familyID, yearID)
	if err != nil {
		return dto.Comparison{}, err
	}
	if latest == nil {
		return out, nil
	}

	delta := b.Balance.Sub(latest.BalanceSnapshotBalance)
	out.HasSnapshot = true
	out.Latest = &latest.BalanceSnapshotBalance
	out.Delta = &delta
	out.SnapshotID = &latest.BalanceSnapshotID
	out.SnapshotAt = &latest.BalanceSnapshotCreatedAt
	out.Changed = delta.Abs().GreaterThanOrEqual(changeEpsilon)
	return out, nil
}

func (s *Service) List(ctx context.Context, familyID, yearID uuid.UUID) ([]model.BalanceSnapshot, error) {
	return s.repo.List(ctx, familyID, yearID)
}
