package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type IssueType string

const (
	IssueDuplicateIBAN    IssueType = "duplicate_iban"
	IssueSimilarPayer     IssueType = "similar_payer"
	IssueStaleMandate     IssueType = "stale_mandate"
	IssueMissingAccount   IssueType = "missing_account"
	IssueLowBalance       IssueType = "low_balance"
	IssueHighBalance      IssueType = "high_balance"
	IssueDuplicateAccount IssueType = "duplicate_account"
	IssueUnlinkedPayment  IssueType = "unlinked_payment"
)

// AllIssueTypes is the order summaries are reported in.
var AllIssueTypes = []IssueType{
	IssueDuplicateIBAN,
	IssueSimilarPayer,
	IssueStaleMandate,
	IssueMissingAccount,
	IssueLowBalance,
	IssueHighBalance,
	IssueDuplicateAccount,
	IssueUnlinkedPayment,
}

func ParseIssueType(s string) (IssueType, bool) {
	for _, t := range AllIssueTypes {
		if string(t) == s {
			return t, true
		}
	}
	return "", false
}

/* =========================================================
   ITEMS
========================================================= */

type AccountItem struct {
	AccountID  uuid.UUID  `json:"account_id"`
	FamilyID   uuid.UUID  `json:"family_id"`
	FamilyName string     `json:"family_name,omitempty"`
	Payer      string     `json:"payer"`
	IBANMasked *string    `json:"iban_masked,omitempty"`
	SignedDate *time.Time `json:"signed_date,omitempty"`
}

// AccountGroup is a set of accounts sharing Key (masked IBAN, phonetic code
// or family id depending on the detector).
type AccountGroup struct {
	Key      string        `json:"key"`
	Accounts []AccountItem `json:"accounts"`
}

type MissingAccountItem struct {
	FamilyID       uuid.UUID `json:"family_id"`
	FamilyName     string    `json:"family_name"`
	ActiveStudents int       `json:"active_students"`
}

type BalanceItem struct {
	FamilyID            uuid.UUID       `json:"family_id"`
	FamilyName          string          `json:"family_name,omitempty"`
	TotalFees           decimal.Decimal `json:"total_fees"`
	TotalPayments       decimal.Decimal `json:"total_payments"`
	PositiveAdjustments decimal.Decimal `json:"positive_adjustments"`
	NegativeAdjustments decimal.Decimal `json:"negative_adjustments"`
	Balance             decimal.Decimal `json:"balance"`

	// Set for low-balance items only.
	ExpectedNow *decimal.Decimal `json:"expected_now,omitempty"`
	ActualPaid  *decimal.Decimal `json:"actual_paid,omitempty"`
	Shortfall   *decimal.Decimal `json:"shortfall,omitempty"`
}

type PaymentItem struct {
	PaymentID   uuid.UUID       `json:"payment_id"`
	BookingDate string          `json:"booking_date"`
	Payer       string          `json:"payer"`
	IBANMasked  *string         `json:"iban_masked,omitempty"`
	Reference   *string         `json:"reference,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
}

// IssueList is what a single detector reports. Items holds one of the item
// slices above.
type IssueList struct {
	Type    IssueType `json:"type"`
	Enabled bool      `json:"enabled"`
	Review  bool      `json:"review,omitempty"`
	Count   int       `json:"count"`
	Items   any       `json:"items"`
}

/* =========================================================
   SETTINGS
========================================================= */

type UpdateSettingRequest struct {
	Value string `json:"value" validate:"required,max=64"`
}
