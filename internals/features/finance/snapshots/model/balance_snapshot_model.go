package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// BalanceSnapshot freezes a family's balance for a school year. Rows are
// insert-only.
type BalanceSnapshot struct {
	BalanceSnapshotID           uuid.UUID       `gorm:"column:balance_snapshot_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"balance_snapshot_id"`
	BalanceSnapshotFamilyID     uuid.UUID       `gorm:"column:balance_snapshot_family_id;type:uuid;not null;index:ix_snapshot_family_year,priority:1" json:"balance_snapshot_family_id"`
	BalanceSnapshotSchoolYearID uuid.UUID       `gorm:"column:balance_snapshot_school_year_id;type:uuid;not null;index:ix_snapshot_family_year,priority:2" json:"balance_snapshot_school_year_id"`
	BalanceSnapshotBalance      decimal.Decimal `gorm:"column:balance_snapshot_balance;type:numeric(12,2);not null" json:"balance_snapshot_balance"`

	BalanceSnapshotTotalFees        decimal.Decimal `gorm:"column:balance_snapshot_total_fees;type:numeric(12,2);not null" json:"balance_snapshot_total_fees"`
	BalanceSnapshotTotalPayments    decimal.Decimal `gorm:"column:balance_snapshot_total_payments;type:numeric(12,2);not null" json:"balance_snapshot_total_payments"`
	BalanceSnapshotTotalAdjustments decimal.Decimal `gorm:"column:balance_snapshot_total_adjustments;type:numeric(12,2);not null" json:"balance_snapshot_total_adjustments"`

	BalanceSnapshotLineItems datatypes.JSON `gorm:"column:balance_snapshot_line_items;type:jsonb;not null" json:"balance_snapshot_line_items"`

	BalanceSnapshotCreatedBy *uuid.UUID `gorm:"column:balance_snapshot_created_by;type:uuid" json:"balance_snapshot_created_by,omitempty"`
	BalanceSnapshotCreatedAt time.Time  `gorm:"column:balance_snapshot_created_at;not null;default:now();index:ix_snapshot_family_year,priority:3" json:"balance_snapshot_created_at"`
}

func (BalanceSnapshot) TableName() string {
	return "sepa_balance_snapshots"
}

func (m *BalanceSnapshot) BeforeCreate(tx *gorm.DB) error {
	if m.BalanceSnapshotCreatedAt.IsZero() {
		m.BalanceSnapshotCreatedAt = time.Now()
	}
	return nil
}
