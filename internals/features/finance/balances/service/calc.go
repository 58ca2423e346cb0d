package service

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"sepaku_backend/internals/features/finance/balances/dto"
)

const dateLayout = "2006-01-02"

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func lastDayOfMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m+1, 0, 0, 0, 0, 0, time.UTC)
}

// monthSpan counts calendar months touched from a to b, both inclusive.
// Zero when b is before a.
func monthSpan(a, b time.Time) int {
	a, b = dateOnly(a), dateOnly(b)
	if b.Before(a) {
		return 0
	}
	return (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month()) + 1
}

// MonthsEnrolled is the number of billable months of an enrollment inside a
// school year. The window runs from max(enrolled, yearStart) to the last day
// of the month of min(unenrolled, yearEnd); any touched month counts fully.
func MonthsEnrolled(enrolled time.Time, unenrolled *time.Time, yearStart, yearEnd time.Time) int {
	start := dateOnly(enrolled)
	if ys := dateOnly(yearStart); start.Before(ys) {
		start = ys
	}
	end := dateOnly(yearEnd)
	if unenrolled != nil {
		if u := dateOnly(*unenrolled); u.Before(end) {
			end = u
		}
	}
	end = lastDayOfMonth(end)
	return monthSpan(start, end)
}

// Progress places today inside the school year. CurrentMonth is clamped to
// [1, TotalMonths] so the proportion is always in (0, 1].
func Progress(yearStart, yearEnd, today time.Time) (total, current int, proportion decimal.Decimal) {
	total = monthSpan(yearStart, yearEnd)
	if total < 1 {
		total = 1
	}
	current = monthSpan(yearStart, today)
	if current < 1 {
		current = 1
	}
	if current > total {
		current = total
	}
	proportion = decimal.NewFromInt(int64(current)).Div(decimal.NewFromInt(int64(total)))
	return total, current, proportion
}

// Compute folds the rows of one family into its balance for the year.
func Compute(familyID, yearID uuid.UUID, yearStart, yearEnd time.Time,
	enrollments []dto.EnrollmentRow, payments []dto.PaymentRow, adjustments []dto.AdjustmentRow,
) dto.Balance {
	b := dto.Balance{
		FamilyID:            familyID,
		SchoolYearID:        yearID,
		TotalFees:           decimal.Zero,
		TotalPayments:       decimal.Zero,
		TotalAdjustments:    decimal.Zero,
		PositiveAdjustments: decimal.Zero,
		NegativeAdjustments: decimal.Zero,
		Fees:                []dto.FeeLine{},
		Payments:            []dto.PaymentLine{},
		Adjustments:         []dto.AdjustmentLine{},
	}

	for _, e := range enrollments {
		months := MonthsEnrolled(e.EnrolledAt, e.UnenrolledAt, yearStart, yearEnd)
		amount := e.MonthlyFee.Mul(decimal.NewFromInt(int64(months))).Round(2)
		b.TotalFees = b.TotalFees.Add(amount)
		name := e.FirstName
		if e.LastName != "" {
			name += " " + e.LastName
		}
		b.Fees = append(b.Fees, dto.FeeLine{
			EnrollmentID: e.EnrollmentID,
			StudentID:    e.StudentID,
			StudentName:  name,
			CourseID:     e.CourseID,
			CourseName:   e.CourseName,
			MonthlyFee:   e.MonthlyFee,
			Months:       months,
			Amount:       amount,
		})
	}

	for _, p := range payments {
		b.TotalPayments = b.TotalPayments.Add(p.Amount)
		b.Payments = append(b.Payments, dto.PaymentLine{
			PaymentID:   p.PaymentID,
			AccountID:   p.AccountID,
			BookingDate: p.BookingDate.Format(dateLayout),
			Payer:       p.Payer,
			Amount:      p.Amount,
		})
	}

	for _, a := range adjustments {
		b.TotalAdjustments = b.TotalAdjustments.Add(a.Amount)
		if a.Amount.IsNegative() {
			b.NegativeAdjustments = b.NegativeAdjustments.Add(a.Amount.Abs())
		} else {
			b.PositiveAdjustments = b.PositiveAdjustments.Add(a.Amount)
		}
		b.Adjustments = append(b.Adjustments, dto.AdjustmentLine{
			ID:          a.ID,
			AccountID:   a.AccountID,
			Kind:        a.Kind,
			Description: a.Description,
			Amount:      a.Amount,
		})
	}

	b.Balance = b.TotalPayments.Add(b.TotalAdjustments).Sub(b.TotalFees)
	return b
}

// ComputeAll groups year-wide rows by family and computes every balance.
// Families appear when they have at least one row of any kind.
func ComputeAll(yearID uuid.UUID, yearStart, yearEnd time.Time,
	enrollments []dto.EnrollmentRow, payments []dto.PaymentRow, adjustments []dto.AdjustmentRow,
) []dto.Balance {
	type bucket struct {
		e []dto.EnrollmentRow
		p []dto.PaymentRow
		a []dto.AdjustmentRow
	}
	byFamily := map[uuid.UUID]*bucket{}
	get := func(id uuid.UUID) *bucket {
		b, ok := byFamily[id]
		if !ok {
			b = &bucket{}
			byFamily[id] = b
		}
		return b
	}
	for _, r := range enrollments {
		get(r.FamilyID).e = append(get(r.FamilyID).e, r)
	}
	for _, r := range payments {
		get(r.FamilyID).p = append(get(r.FamilyID).p, r)
	}
	for _, r := range adjustments {
		get(r.FamilyID).a = append(get(r.FamilyID).a, r)
	}

	out := make([]dto.Balance, 0, len(byFamily))
	for fid, b := range byFamily {
		out = append(out, Compute(fid, yearID, yearStart, yearEnd, b.e, b.p, b.a))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].FamilyID.String() < out[j].FamilyID.String()
	})
	return out
}
