// file: internals/features/finance/update_requests/model/update_request_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// =========================================================
// MODEL
// A parent's request to change the family's bank details. Every old_* and
// new_* bank field holds ciphertext. At most one pending row per family,
// enforced by uq_update_request_pending (see databases.Migrate).
// =========================================================

type UpdateRequest struct {
	UpdateRequestID       uuid.UUID `gorm:"column:update_request_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"update_request_id"`
	UpdateRequestFamilyID uuid.UUID `gorm:"column:update_request_family_id;type:uuid;not null;index:ix_update_request_family" json:"update_request_family_id"`
	UpdateRequestStatus   Status    `gorm:"column:update_request_status;type:varchar(16);not null;default:'pending';index:ix_update_request_status" json:"update_request_status"`

	UpdateRequestOldPayer      *string `gorm:"column:update_request_old_payer" json:"-"`
	UpdateRequestOldIBAN       *string `gorm:"column:update_request_old_iban" json:"-"`
	UpdateRequestOldBIC        *string `gorm:"column:update_request_old_bic" json:"-"`
	UpdateRequestOldSignedDate *string `gorm:"column:update_request_old_signed_date" json:"-"`

	UpdateRequestNewPayer      *string `gorm:"column:update_request_new_payer" json:"-"`
	UpdateRequestNewIBAN       *string `gorm:"column:update_request_new_iban" json:"-"`
	UpdateRequestNewBIC        *string `gorm:"column:update_request_new_bic" json:"-"`
	UpdateRequestNewSignedDate *string `gorm:"column:update_request_new_signed_date" json:"-"`

	UpdateRequestNewNote         *string        `gorm:"column:update_request_new_note" json:"update_request_new_note,omitempty"`
	UpdateRequestNewCustomFields datatypes.JSON `gorm:"column:update_request_new_custom_fields;type:jsonb" json:"update_request_new_custom_fields,omitempty"`

	UpdateRequestIntegrityHash string `gorm:"column:update_request_integrity_hash;type:char(64);not null" json:"-"`
	UpdateRequestHashVersion   string `gorm:"column:update_request_hash_version;type:varchar(8);not null" json:"-"`

	// submitter audit
	UpdateRequestSubmittedBy        *uuid.UUID     `gorm:"column:update_request_submitted_by;type:uuid" json:"update_request_submitted_by,omitempty"`
	UpdateRequestSubmittedIP        *string        `gorm:"column:update_request_submitted_ip;type:varchar(64)" json:"-"`
	UpdateRequestSubmittedUserAgent *string        `gorm:"column:update_request_submitted_user_agent;type:varchar(512)" json:"-"`
	UpdateRequestSubmittedContext   datatypes.JSON `gorm:"column:update_request_submitted_context;type:jsonb" json:"-"`

	// decider audit
	UpdateRequestDecidedBy        *uuid.UUID     `gorm:"column:update_request_decided_by;type:uuid" json:"update_request_decided_by,omitempty"`
	UpdateRequestDecidedIP        *string        `gorm:"column:update_request_decided_ip;type:varchar(64)" json:"-"`
	UpdateRequestDecidedUserAgent *string        `gorm:"column:update_request_decided_user_agent;type:varchar(512)" json:"-"`
	UpdateRequestDecidedContext   datatypes.JSON `gorm:"column:update_request_decided_context;type:jsonb" json:"-"`
	UpdateRequestDecisionNote     *string        `gorm:"column:update_request_decision_note" json:"update_request_decision_note,omitempty"`
	UpdateRequestDecidedAt        *time.Time     `gorm:"column:update_request_decided_at" json:"update_request_decided_at,omitempty"`

	UpdateRequestCreatedAt time.Time `gorm:"column:update_request_created_at;not null;default:now()" json:"update_request_created_at"`
	UpdateRequestUpdatedAt time.Time `gorm:"column:update_request_updated_at;not null;default:now()" json:"update_request_updated_at"`
}

func (UpdateRequest) TableName() string {
	return "sepa_account_update_requests"
}

func (m *UpdateRequest) Decided() bool {
	return m.UpdateRequestStatus != StatusPending
}

func (m *UpdateRequest) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if m.UpdateRequestCreatedAt.IsZero() {
		m.UpdateRequestCreatedAt = now
	}
	m.UpdateRequestUpdatedAt = now
	if m.UpdateRequestStatus == "" {
		m.UpdateRequestStatus = StatusPending
	}
	return nil
}

func (m *UpdateRequest) BeforeUpdate(tx *gorm.DB) error {
	m.UpdateRequestUpdatedAt = time.Now()
	return nil
}
