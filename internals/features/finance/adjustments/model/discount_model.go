package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Discount is a named credit, always positive. Balance-wise it behaves like a
// positive Adjustment; the separate table keeps the audit trail apart.
type Discount struct {
	DiscountID           uuid.UUID       `gorm:"column:discount_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"discount_id"`
	DiscountAccountID    uuid.UUID       `gorm:"column:discount_account_id;type:uuid;not null;index:ix_discount_account_year,priority:1" json:"discount_account_id"`
	DiscountSchoolYearID uuid.UUID       `gorm:"column:discount_school_year_id;type:uuid;not null;index:ix_discount_account_year,priority:2" json:"discount_school_year_id"`
	DiscountAmount       decimal.Decimal `gorm:"column:discount_amount;type:numeric(12,2);not null;check:discount_amount > 0" json:"discount_amount"`
	DiscountDescription  string          `gorm:"column:discount_description;type:varchar(200);not null" json:"discount_description"`
	DiscountNote         *string         `gorm:"column:discount_note" json:"discount_note,omitempty"`
	DiscountCreatedBy    *uuid.UUID      `gorm:"column:discount_created_by;type:uuid" json:"discount_created_by,omitempty"`

	DiscountCreatedAt time.Time      `gorm:"column:discount_created_at;not null;default:now()" json:"discount_created_at"`
	DiscountUpdatedAt time.Time      `gorm:"column:discount_updated_at;not null;default:now()" json:"discount_updated_at"`
	DiscountDeletedAt gorm.DeletedAt `gorm:"column:discount_deleted_at;index" json:"-"`
}

func (Discount) TableName() string { return "sepa_discounts" }

func (m *Discount) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if m.DiscountCreatedAt.IsZero() {
		m.DiscountCreatedAt = now
	}
	m.DiscountUpdatedAt = now
	return nil
}

func (m *Discount) BeforeUpdate(tx *gorm.DB) error {
	m.DiscountUpdatedAt = time.Now()
	return nil
}
