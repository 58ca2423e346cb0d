package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	accountModel "sepaku_backend/internals/features/finance/accounts/model"
)

const DateLayout = "2006-01-02"

/* =========================================================
   REQUEST DTOs
========================================================= */

// CreatePaymentRequest: one manual entry or one row of a bank import.
// IBAN is raw; it is masked before storage. AutoLink runs the matcher
// right after insert.
type CreatePaymentRequest struct {
	BookingDate  string          `json:"payment_booking_date" validate:"required,datetime=2006-01-02"`
	PayerRaw     string          `json:"payment_payer_raw" validate:"required,max=200"`
	IBAN         *string         `json:"iban" validate:"omitempty,max=42"`
	Reference    *string         `json:"payment_reference" validate:"omitempty,max=300"`
	Amount       decimal.Decimal `json:"payment_amount"`
	Method       string          `json:"payment_method" validate:"required,oneof=card cash bank_transfer sepa"`
	SchoolYearID uuid.UUID       `json:"payment_school_year_id" validate:"required"`
	AccountID    *uuid.UUID      `json:"payment_account_id"`
	AutoLink     bool            `json:"auto_link"`
}

type PatchPaymentRequest struct {
	BookingDate  *string          `json:"payment_booking_date" validate:"omitempty,datetime=2006-01-02"`
	PayerRaw     *string          `json:"payment_payer_raw" validate:"omitempty,min=1,max=200"`
	Reference    *string          `json:"payment_reference" validate:"omitempty,max=300"`
	Amount       *decimal.Decimal `json:"payment_amount"`
	Method       *string          `json:"payment_method" validate:"omitempty,oneof=card cash bank_transfer sepa"`
	SchoolYearID *uuid.UUID       `json:"payment_school_year_id"`
}

type LinkPaymentRequest struct {
	AccountID uuid.UUID `json:"account_id" validate:"required"`
}

type AutoLinkAllRequest struct {
	SchoolYearID uuid.UUID `json:"school_year_id" validate:"required"`
}

// Linked filter values for ListPaymentsQuery.
const (
	LinkedAny = ""
	LinkedYes = "yes"
	LinkedNo  = "no"
)

type ListPaymentsQuery struct {
	SchoolYearID uuid.UUID
	AccountID    uuid.UUID
	Linked       string
	Offset       int
	Limit        int
}

/* =========================================================
   RESPONSE DTOs
========================================================= */

type MatchOutcome string

const (
	MatchLinked    MatchOutcome = "linked"
	MatchAmbiguous MatchOutcome = "ambiguous"
	MatchUnmatched MatchOutcome = "unmatched"
	MatchSkipped   MatchOutcome = "already_linked"
)

type AutoLinkResult struct {
	PaymentID  uuid.UUID    `json:"payment_id"`
	Outcome    MatchOutcome `json:"outcome"`
	AccountID  *uuid.UUID   `json:"account_id,omitempty"`
	Candidates int          `json:"candidates"`
}

type AutoLinkReport struct {
	Linked    int         `json:"linked"`
	Ambiguous []uuid.UUID `json:"ambiguous"`
	Unmatched []uuid.UUID `json:"unmatched"`
}

type Suggestion struct {
	Account  accountModel.Account `json:"account"`
	Distance int                  `json:"distance"`
}
