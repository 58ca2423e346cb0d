package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Adjustment: positive amounts credit the family, negative ones are extra charges.
type Adjustment struct {
	AdjustmentID           uuid.UUID       `gorm:"column:adjustment_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"adjustment_id"`
	AdjustmentAccountID    uuid.UUID       `gorm:"column:adjustment_account_id;type:uuid;not null;index:ix_adjustment_account_year,priority:1" json:"adjustment_account_id"`
	AdjustmentSchoolYearID uuid.UUID       `gorm:"column:adjustment_school_year_id;type:uuid;not null;index:ix_adjustment_account_year,priority:2" json:"adjustment_school_year_id"`
	AdjustmentAmount       decimal.Decimal `gorm:"column:adjustment_amount;type:numeric(12,2);not null" json:"adjustment_amount"`
	AdjustmentDescription  string          `gorm:"column:adjustment_description;type:varchar(200);not null" json:"adjustment_description"`
	AdjustmentNote         *string         `gorm:"column:adjustment_note" json:"adjustment_note,omitempty"`
	AdjustmentCreatedBy    *uuid.UUID      `gorm:"column:adjustment_created_by;type:uuid" json:"adjustment_created_by,omitempty"`

	AdjustmentCreatedAt time.Time      `gorm:"column:adjustment_created_at;not null;default:now()" json:"adjustment_created_at"`
	AdjustmentUpdatedAt time.Time      `gorm:"column:adjustment_updated_at;not null;default:now()" json:"adjustment_updated_at"`
	AdjustmentDeletedAt gorm.DeletedAt `gorm:"column:adjustment_deleted_at;index" json:"-"`
}

func (Adjustment) TableName() string { return "sepa_adjustments" }

func (m *Adjustment) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if m.AdjustmentCreatedAt.IsZero() {
		m.AdjustmentCreatedAt = now
	}
	m.AdjustmentUpdatedAt = now
	return nil
}

func (m *Adjustment) BeforeUpdate(tx *gorm.DB) error {
	m.AdjustmentUpdatedAt = time.Now()
	return nil
}
