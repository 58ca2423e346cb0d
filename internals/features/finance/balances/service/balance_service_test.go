package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sepaku_backend/internals/features/finance/balances/dto"
	schoolModel "sepaku_backend/internals/features/finance/school/model"
	"sepaku_backend/internals/helpers/apperror"
)

type memLines struct {
	enrollments []dto.EnrollmentRow
	payments    []dto.PaymentRow
	adjustments []dto.AdjustmentRow
}

func (m *memLines) Enrollments(_ context.Context, _ uuid.UUID, fam *uuid.UUID) ([]dto.EnrollmentRow, error) {
	var out []dto.EnrollmentRow
	for _, r := range m.enrollments {
		if fam == nil || r.FamilyID == *fam {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memLines) Payments(_ context.Context, _ uuid.UUID, fam *uuid.UUID) ([]dto.PaymentRow, error) {
	var out []dto.PaymentRow
	for _, r := range m.payments {
		if fam == nil || r.FamilyID == *fam {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memLines) Adjustments(_ context.Context, _ uuid.UUID, fam *uuid.UUID) ([]dto.AdjustmentRow, error) {
	var out []dto.AdjustmentRow
	for _, r := range m.adjustments {
		if fam == nil || r.FamilyID == *fam {
			out = append(out, r)
		}
	}
	return out, nil
}

type years map[uuid.UUID]schoolModel.SchoolYear

func (y years) SchoolYear(_ context.Context, id uuid.UUID) (schoolModel.SchoolYear, error) {
	v, ok := y[id]
	if !ok {
		return v, apperror.NotFound("school year")
	}
	return v, nil
}

func TestService_ComputeFamilyBalance(t *testing.T) {
	yearID, fam, other := uuid.New(), uuid.New(), uuid.New()
	lines := &memLines{
		enrollments: []dto.EnrollmentRow{
			{FamilyID: fam, MonthlyFee: dec("100"), EnrolledAt: day("2024-09-15"), UnenrolledAt: dayPtr("2024-11-03")},
			{FamilyID: other, MonthlyFee: dec("999"), EnrolledAt: yearStart},
		},
		payments: []dto.PaymentRow{{FamilyID: fam, Amount: dec("250")}},
	}
	s := NewService(lines, years{yearID: {SchoolYearID: yearID, SchoolYearStartDate: yearStart, SchoolYearEndDate: yearEnd}}, zerolog.Nop())

	b, err := s.ComputeFamilyBalance(context.Background(), fam, yearID)
	require.NoError(t, err)
	assert.Equal(t, "300.00", b.TotalFees.StringFixed(2))
	assert.Equal(t, "-50.00", b.Balance.StringFixed(2))

	all, err := s.ComputeYear(context.Background(), yearID)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = s.ComputeFamilyBalance(context.Background(), fam, uuid.New())
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestService_AcademicYearProgress(t *testing.T) {
	yearID := uuid.New()
	s := NewService(&memLines{}, years{yearID: {SchoolYearID: yearID, SchoolYearStartDate: yearStart, SchoolYearEndDate: yearEnd}}, zerolog.Nop()).
		WithClock(func() time.Time { return day("2024-12-03") })

	p, err := s.AcademicYearProgress(context.Background(), yearID)
	require.NoError(t, err)
	assert.Equal(t, 10, p.TotalMonths)
	assert.Equal(t, 4, p.CurrentMonth)
	assert.Equal(t, "0.4", p.Proportion.String())
}
