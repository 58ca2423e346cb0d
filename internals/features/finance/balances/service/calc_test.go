package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sepaku_backend/internals/features/finance/balances/dto"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func dayPtr(s string) *time.Time {
	t := day(s)
	return &t
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

var (
	yearStart = day("2024-09-01")
	yearEnd   = day("2025-06-30")
)

func TestMonthsEnrolled(t *testing.T) {
	tests := []struct {
		name       string
		enrolled   time.Time
		unenrolled *time.Time
		want       int
	}{
		{"partial months count fully", day("2024-09-15"), dayPtr("2024-11-03"), 3},
		{"whole year", day("2024-09-01"), nil, 10},
		{"enrolled before the year", day("2024-05-10"), nil, 10},
		{"unenrolled after the year", day("2024-09-01"), dayPtr("2025-08-01"), 10},
		{"single day", day("2024-12-31"), dayPtr("2024-12-31"), 1},
		{"left before the year started", day("2024-01-01"), dayPtr("2024-08-20"), 0},
		{"enrolled after the year ended", day("2025-07-01"), nil, 0},
		{"last month of the year", day("2025-06-30"), nil, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MonthsEnrolled(tt.enrolled, tt.unenrolled, yearStart, yearEnd))
		})
	}
}

func TestProgress(t *testing.T) {
	tests := []struct {
		today         time.Time
		total, current int
		proportion    string
	}{
		{day("2024-12-15"), 10, 4, "0.4"},
		{day("2024-09-01"), 10, 1, "0.1"},
		{day("2024-06-01"), 10, 1, "0.1"},
		{day("2025-06-30"), 10, 10, "1"},
		{day("2026-01-01"), 10, 10, "1"},
	}
	for _, tt := range tests {
		total, current, p := Progress(yearStart, yearEnd, tt.today)
		assert.Equal(t, tt.total, total, tt.today)
		assert.Equal(t, tt.current, current, tt.today)
		assert.True(t, dec(tt.proportion).Equal(p), "%s: %s", tt.today, p)
	}
}

func TestCompute_Formula(t *testing.T) {
	fam, year := uuid.New(), uuid.New()

	b := Compute(fam, year, yearStart, yearEnd,
		[]dto.EnrollmentRow{{FamilyID: fam, FirstName: "Ada", MonthlyFee: dec("50"), EnrolledAt: yearStart}},
		[]dto.PaymentRow{
			{FamilyID: fam, Amount: dec("200"), BookingDate: day("2024-09-05")},
			{FamilyID: fam, Amount: dec("100"), BookingDate: day("2024-10-05")},
		},
		[]dto.AdjustmentRow{
			{FamilyID: fam, Kind: dto.KindAdjustment, Amount: dec("-80")},
			{FamilyID: fam, Kind: dto.KindDiscount, Amount: dec("30")},
		},
	)

	assert.Equal(t, "500.00", b.TotalFees.StringFixed(2))
	assert.Equal(t, "300.00", b.TotalPayments.StringFixed(2))
	assert.Equal(t, "-50.00", b.TotalAdjustments.StringFixed(2))
	assert.Equal(t, "30.00", b.PositiveAdjustments.StringFixed(2))
	assert.Equal(t, "80.00", b.NegativeAdjustments.StringFixed(2))
	assert.Equal(t, "-250.00", b.Balance.StringFixed(2))
	require.Len(t, b.Fees, 1)
	assert.Equal(t, 10, b.Fees[0].Months)
	assert.Equal(t, "2024-09-05", b.Payments[0].BookingDate)
}

func TestCompute_MonthAccrualExample(t *testing.T) {
	fam := uuid.New()
	b := Compute(fam, uuid.New(), yearStart, yearEnd,
		[]dto.EnrollmentRow{{
			FamilyID:     fam,
			FirstName:    "Ben",
			LastName:     "Doe",
			MonthlyFee:   dec("100"),
			EnrolledAt:   day("2024-09-15"),
			UnenrolledAt: dayPtr("2024-11-03"),
		}}, nil, nil)

	assert.Equal(t, 3, b.Fees[0].Months)
	assert.Equal(t, "Ben Doe", b.Fees[0].StudentName)
	assert.Equal(t, "300.00", b.TotalFees.StringFixed(2))
	assert.Equal(t, "-300.00", b.Balance.StringFixed(2))
}

func TestCompute_EmptyIsZero(t *testing.T) {
	b := Compute(uuid.New(), uuid.New(), yearStart, yearEnd, nil, nil, nil)
	assert.True(t, b.Balance.IsZero())
	assert.NotNil(t, b.Fees)
	assert.NotNil(t, b.Payments)
	assert.NotNil(t, b.Adjustments)
}

func TestComputeAll_GroupsByFamily(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	out := ComputeAll(uuid.New(), yearStart, yearEnd,
		[]dto.EnrollmentRow{{FamilyID: a, MonthlyFee: dec("10"), EnrolledAt: yearStart}},
		[]dto.PaymentRow{{FamilyID: b, Amount: dec("25")}, {FamilyID: a, Amount: dec("100")}},
		nil,
	)
	require.Len(t, out, 2)

	got := map[uuid.UUID]string{}
	for _, bal := range out {
		got[bal.FamilyID] = bal.Balance.StringFixed(2)
	}
	assert.Equal(t, "0.00", got[a])
	assert.Equal(t, "25.00", got[b])
}
