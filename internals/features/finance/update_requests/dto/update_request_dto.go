package dto

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	accountModel "sepaku_backend/internals/features/finance/accounts/model"
	"sepaku_backend/internals/features/finance/update_requests/model"
	"sepaku_backend/internals/helpers/secure"
)

/* =========================================================
   INPUT
========================================================= */

type SubmitRequest struct {
	FamilyID     uuid.UUID      `json:"family_id" validate:"required"`
	Payer        string         `json:"payer" validate:"required,max=160"`
	IBAN         string         `json:"iban" validate:"required,iban"`
	BIC          *string        `json:"bic" validate:"omitempty,bic"`
	SignedDate   *string        `json:"signed_date" validate:"omitempty,datetime=2006-01-02"`
	Note         *string        `json:"note" validate:"omitempty,max=2000"`
	CustomFields map[string]any `json:"custom_fields"`
}

type DecisionRequest struct {
	Note *string `json:"note" validate:"omitempty,max=2000"`
}

// Actor is who performs an action and from where.
type Actor struct {
	UserID    uuid.UUID
	IP        string
	UserAgent string
	Context   map[string]any
}

type ListQuery struct {
	Status   model.Status
	FamilyID uuid.UUID
	Offset   int
	Limit    int
}

/* =========================================================
   OUTPUT
========================================================= */

// BankDetails are decrypted values; a field that could not be decrypted is nil.
type BankDetails struct {
	Payer      *string `json:"payer"`
	IBAN       *string `json:"iban"`
	BIC        *string `json:"bic"`
	SignedDate *string `json:"signed_date"`
}

type Integrity struct {
	secure.Verification
	Version string `json:"version"`
	// Warning is set when the hash does not match or a field could not be
	// decrypted.
	Warning      bool `json:"warning"`
	Unverifiable bool `json:"unverifiable,omitempty"`
}

type View struct {
	ID              uuid.UUID      `json:"id"`
	FamilyID        uuid.UUID      `json:"family_id"`
	Status          model.Status   `json:"status"`
	Old             BankDetails    `json:"old"`
	New             BankDetails    `json:"new"`
	NewNote         *string        `json:"new_note,omitempty"`
	NewCustomFields datatypes.JSON `json:"new_custom_fields,omitempty"`
	Integrity       Integrity      `json:"integrity"`

	SubmittedBy        *uuid.UUID `json:"submitted_by,omitempty"`
	SubmittedIP        *string    `json:"submitted_ip,omitempty"`
	SubmittedUserAgent *string    `json:"submitted_user_agent,omitempty"`

	DecidedBy    *uuid.UUID `json:"decided_by,omitempty"`
	DecidedAt    *time.Time `json:"decided_at,omitempty"`
	DecisionNote *string    `json:"decision_note,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// AccountChange is what an approval writes to the family's account.
type AccountChange struct {
	FamilyID     uuid.UUID
	Payer        string
	IBANMasked   *string
	SignedDate   *time.Time
	Note         *string
	CustomFields datatypes.JSON
	Actor        *uuid.UUID
}

// NewAccount is the account an approval creates for a family without one.
func (ch AccountChange) NewAccount() accountModel.Account {
	acc := accountModel.Account{AccountFamilyID: ch.FamilyID, AccountCreatedBy: ch.Actor}
	ch.Apply(&acc)
	return acc
}

// Apply writes the change onto the family's account. Payer and IBAN always
// replace; signed date, note and custom fields only when the request has them.
func (ch AccountChange) Apply(acc *accountModel.Account) {
	acc.AccountPayer = ch.Payer
	acc.AccountIBANMasked = ch.IBANMasked
	acc.AccountBIC = nil
	if ch.SignedDate != nil {
		acc.AccountSignedDate = ch.SignedDate
	}
	if ch.Note != nil {
		acc.AccountNote = ch.Note
	}
	if len(ch.CustomFields) > 0 {
		acc.AccountCustomFields = ch.CustomFields
	}
}
