package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

/* =========================================================
   ROWS (read from storage)
========================================================= */

type EnrollmentRow struct {
	FamilyID     uuid.UUID       `gorm:"column:family_id"`
	EnrollmentID uuid.UUID       `gorm:"column:enrollment_id"`
	StudentID    uuid.UUID       `gorm:"column:student_id"`
	FirstName    string          `gorm:"column:first_name"`
	LastName     string          `gorm:"column:last_name"`
	CourseID     uuid.UUID       `gorm:"column:course_id"`
	CourseName   string          `gorm:"column:course_name"`
	MonthlyFee   decimal.Decimal `gorm:"column:monthly_fee"`
	EnrolledAt   time.Time       `gorm:"column:enrolled_at"`
	UnenrolledAt *time.Time      `gorm:"column:unenrolled_at"`
}

type PaymentRow struct {
	FamilyID    uuid.UUID       `gorm:"column:family_id"`
	PaymentID   uuid.UUID       `gorm:"column:payment_id"`
	AccountID   uuid.UUID       `gorm:"column:account_id"`
	BookingDate time.Time       `gorm:"column:booking_date"`
	Payer       string          `gorm:"column:payer"`
	Amount      decimal.Decimal `gorm:"column:amount"`
}

type AdjustmentKind string

const (
	KindAdjustment AdjustmentKind = "adjustment"
	KindDiscount   AdjustmentKind = "discount"
)

type AdjustmentRow struct {
	FamilyID    uuid.UUID       `gorm:"column:family_id"`
	ID          uuid.UUID       `gorm:"column:id"`
	AccountID   uuid.UUID       `gorm:"column:account_id"`
	Kind        AdjustmentKind  `gorm:"column:kind"`
	Description string          `gorm:"column:description"`
	Amount      decimal.Decimal `gorm:"column:amount"`
}

/* =========================================================
   RESULTS
========================================================= */

type FeeLine struct {
	EnrollmentID uuid.UUID       `json:"enrollment_id"`
	StudentID    uuid.UUID       `json:"student_id"`
	StudentName  string          `json:"student_name"`
	CourseID     uuid.UUID       `json:"course_id"`
	CourseName   string          `json:"course_name"`
	MonthlyFee   decimal.Decimal `json:"monthly_fee"`
	Months       int             `json:"months"`
	Amount       decimal.Decimal `json:"amount"`
}

type PaymentLine struct {
	PaymentID   uuid.UUID       `json:"payment_id"`
	AccountID   uuid.UUID       `json:"account_id"`
	BookingDate string          `json:"booking_date"`
	Payer       string          `json:"payer"`
	Amount      decimal.Decimal `json:"amount"`
}

type AdjustmentLine struct {
	ID          uuid.UUID       `json:"id"`
	AccountID   uuid.UUID       `json:"account_id"`
	Kind        AdjustmentKind  `json:"kind"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// Balance = TotalPayments + TotalAdjustments - TotalFees.
// TotalAdjustments = PositiveAdjustments - NegativeAdjustments (the latter is an absolute sum).
type Balance struct {
	FamilyID            uuid.UUID       `json:"family_id"`
	SchoolYearID        uuid.UUID       `json:"school_year_id"`
	TotalFees           decimal.Decimal `json:"total_fees"`
	TotalPayments       decimal.Decimal `json:"total_payments"`
	TotalAdjustments    decimal.Decimal `json:"total_adjustments"`
	PositiveAdjustments decimal.Decimal `json:"positive_adjustments"`
	NegativeAdjustments decimal.Decimal `json:"negative_adjustments"`
	Balance             decimal.Decimal `json:"balance"`

	Fees        []FeeLine        `json:"fees"`
	Payments    []PaymentLine    `json:"payments"`
	Adjustments []AdjustmentLine `json:"adjustments"`
}

type Progress struct {
	SchoolYearID uuid.UUID       `json:"school_year_id"`
	TotalMonths  int             `json:"total_months"`
	CurrentMonth int             `json:"current_month"`
	Proportion   decimal.Decimal `json:"proportion"`
}
