package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"sepaku_backend/internals/features/finance/balances/dto"
	schoolModel "sepaku_backend/internals/features/finance/school/model"
)

type Repository interface {
	Enrollments(ctx context.Context, yearID uuid.UUID, familyID *uuid.UUID) ([]dto.EnrollmentRow, error)
	Payments(ctx context.Context, yearID uuid.UUID, familyID *uuid.UUID) ([]dto.PaymentRow, error)
	Adjustments(ctx context.Context, yearID uuid.UUID, familyID *uuid.UUID) ([]dto.AdjustmentRow, error)
}

type YearSource interface {
	SchoolYear(ctx context.Context, id uuid.UUID) (schoolModel.SchoolYear, error)
}

type Service struct {
	repo  Repository
	years YearSource
	now   func() time.Time
	log   zerolog.Logger
}

func NewService(repo Repository, years YearSource, log zerolog.Logger) *Service {
	return &Service{
		repo:  repo,
		years: years,
		now:   time.Now,
		log:   log.With().Str("svc", "balances").Logger(),
	}
}

// WithClock replaces the time source used for academic-year progress.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) load(ctx context.Context, yearID uuid.UUID, familyID *uuid.UUID) (
	schoolModel.SchoolYear, []dto.EnrollmentRow, []dto.PaymentRow, []dto.AdjustmentRow, error,
) {
	year, err := s.years.SchoolYear(ctx, yearID)
	if err != nil {
		return year, nil, nil, nil, err
	}
	enrollments, err := s.repo.Enrollments(ctx, yearID, familyID)
	if err != nil {
		return year, nil, nil, nil, err
	}
	payments, err := s.repo.Payments(ctx, yearID, familyID)
	if err != nil {
		return year, nil, nil, nil, err
	}
	adjustments, err := s.repo.Adjustments(ctx, yearID, familyID)
	if err != nil {
		return year, nil, nil, nil, err
	}
	return year, enrollments, payments, adjustments, nil
}

func (s *Service) ComputeFamilyBalance(ctx context.Context, familyID, yearID uuid.UUID) (dto.Balance, error) {
	year, enrollments, payments, adjustments, err := s.load(ctx, yearID, &familyID)
	if err != nil {
		return dto.Balance{}, err
	}
	return Compute(familyID, yearID, year.SchoolYearStartDate, year.SchoolYearEndDate, enrollments, payments, adjustments), nil
}

// ComputeYear returns the balance of every family with activity in the year,
// reading each table once.
func (s *Service) ComputeYear(ctx context.Context, yearID uuid.UUID) ([]dto.Balance, error) {
	year, enrollments, payments, adjustments, err := s.load(ctx, yearID, nil)
	if err != nil {
		return nil, err
	}
	out := ComputeAll(yearID, year.SchoolYearStartDate, year.SchoolYearEndDate, enrollments, payments, adjustments)
	s.log.Debug().Str("school_year_id", yearID.String()).Int("families", len(out)).Msg("year balances computed")
	return out, nil
}

func (s *Service) AcademicYearProgress(ctx context.Context, yearID uuid.UUID) (dto.Progress, error) {
	year, err := s.years.SchoolYear(ctx, yearID)
	if err != nil {
		return dto.Progress{}, err
	}
	total, current, proportion := Progress(year.SchoolYearStartDate, year.SchoolYearEndDate, s.now())
	return dto.Progress{
		SchoolYearID: yearID,
		TotalMonths:  total,
		CurrentMonth: current,
		Proportion:   proportion,
	}, nil
}
