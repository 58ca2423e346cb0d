package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

/* ===================== Enums (string) ===================== */

type PaymentMethod string

const (
	PaymentMethodCard         PaymentMethod = "card"
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodSEPA         PaymentMethod = "sepa"
)

/* ===================== Model ===================== */

// Payment is one booked transaction. PaymentAccountID stays nil until the
// payment is matched to an account.
type Payment struct {
	PaymentID uuid.UUID `gorm:"column:payment_id;type:uuid;default:gen_random_uuid();primaryKey" json:"payment_id"`

	PaymentBookingDate time.Time `gorm:"column:payment_booking_date;type:date;not null;index:ix_payment_booking_date" json:"payment_booking_date"`

	// As received from the bank file
	PaymentPayerRaw   string  `gorm:"column:payment_payer_raw;type:varchar(200);not null" json:"payment_payer_raw"`
	PaymentIBANMasked *string `gorm:"column:payment_iban_masked;type:varchar(16)" json:"payment_iban_masked,omitempty"`
	PaymentReference  *string `gorm:"column:payment_reference;type:varchar(300)" json:"payment_reference,omitempty"`

	// Signed, 2 dp
	PaymentAmount decimal.Decimal `gorm:"column:payment_amount;type:numeric(12,2);not null" json:"payment_amount"`
	PaymentMethod PaymentMethod   `gorm:"column:payment_method;type:varchar(20);not null;default:'bank_transfer'" json:"payment_method"`

	PaymentSchoolYearID uuid.UUID  `gorm:"column:payment_school_year_id;type:uuid;not null;index:ix_payment_year_account,priority:1" json:"payment_school_year_id"`
	PaymentAccountID    *uuid.UUID `gorm:"column:payment_account_id;type:uuid;index:ix_payment_year_account,priority:2" json:"payment_account_id,omitempty"`

	PaymentCreatedBy *uuid.UUID `gorm:"column:payment_created_by;type:uuid" json:"payment_created_by,omitempty"`

	PaymentCreatedAt time.Time      `gorm:"column:payment_created_at;not null;default:now()" json:"payment_created_at"`
	PaymentUpdatedAt time.Time      `gorm:"column:payment_updated_at;not null;default:now()" json:"payment_updated_at"`
	PaymentDeletedAt gorm.DeletedAt `gorm:"column:payment_deleted_at;index" json:"-"`
}

func (Payment) TableName() string {
	return "sepa_payments"
}

func (m *Payment) Linked() bool {
	return m.PaymentAccountID != nil && *m.PaymentAccountID != uuid.Nil
}

func (m *Payment) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if m.PaymentCreatedAt.IsZero() {
		m.PaymentCreatedAt = now
	}
	m.PaymentUpdatedAt = now
	m.PaymentAmount = m.PaymentAmount.Round(2)
	return nil
}

func (m *Payment) BeforeUpdate(tx *gorm.DB) error {
	m.PaymentUpdatedAt = time.Now()
	m.PaymentAmount = m.PaymentAmount.Round(2)
	return nil
}
