// file: internals/features/finance/accounts/model/account_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// =========================================================
// MODEL
// One SEPA mandate holder per family. A second row for the same family is
// reported by the issue detector, not rejected here.
// =========================================================

type Account struct {
	AccountID       uuid.UUID `gorm:"column:account_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"account_id"`
	AccountFamilyID uuid.UUID `gorm:"column:account_family_id;type:uuid;not null;index:ix_account_family" json:"account_family_id"`

	AccountPayer string `gorm:"column:account_payer;type:varchar(160);not null" json:"account_payer"`

	// Display form only ("DE****000"); the full IBAN is never stored.
	AccountIBANMasked *string `gorm:"column:account_iban_masked;type:varchar(16);index:ix_account_iban_masked" json:"account_iban_masked,omitempty"`
	// Kept for older readers of the table; always NULL.
	AccountBIC *string `gorm:"column:account_bic;type:varchar(11)" json:"account_bic"`

	AccountSignedDate   *time.Time     `gorm:"column:account_signed_date;type:date" json:"account_signed_date,omitempty"`
	AccountNote         *string        `gorm:"column:account_note" json:"account_note,omitempty"`
	AccountCustomFields datatypes.JSON `gorm:"column:account_custom_fields;type:jsonb" json:"account_custom_fields,omitempty"`

	AccountCreatedBy *uuid.UUID `gorm:"column:account_created_by;type:uuid" json:"account_created_by,omitempty"`

	AccountCreatedAt time.Time      `gorm:"column:account_created_at;not null;default:now()" json:"account_created_at"`
	AccountUpdatedAt time.Time      `gorm:"column:account_updated_at;not null;default:now()" json:"account_updated_at"`
	AccountDeletedAt gorm.DeletedAt `gorm:"column:account_deleted_at;index" json:"-"`
}

func (Account) TableName() string {
	return "sepa_accounts"
}

// =========================================================
// HOOKS
// =========================================================

func (m *Account) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if m.AccountCreatedAt.IsZero() {
		m.AccountCreatedAt = now
	}
	m.AccountUpdatedAt = now
	m.AccountBIC = nil
	return nil
}

func (m *Account) BeforeUpdate(tx *gorm.DB) error {
	m.AccountUpdatedAt = time.Now()
	m.AccountBIC = nil
	return nil
}
