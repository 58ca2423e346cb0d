package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	balanceDto "sepaku_backend/internals/features/finance/balances/dto"
)

type CreateSnapshotRequest struct {
	FamilyID     uuid.UUID `json:"family_id" validate:"required"`
	SchoolYearID uuid.UUID `json:"school_year_id" validate:"required"`
}

// LineItems is the JSON stored with every snapshot.
type LineItems struct {
	Fees        []balanceDto.FeeLine        `json:"fees"`
	Payments    []balanceDto.PaymentLine    `json:"payments"`
	Adjustments []balanceDto.AdjustmentLine `json:"adjustments"`
}

// Comparison tells whether the live balance moved since the latest snapshot.
// Without a snapshot Changed is true and Latest/Delta are nil.
type Comparison struct {
	FamilyID     uuid.UUID        `json:"family_id"`
	SchoolYearID uuid.UUID        `json:"school_year_id"`
	HasSnapshot  bool             `json:"has_snapshot"`
	Changed      bool             `json:"changed"`
	Current      decimal.Decimal  `json:"current"`
	Latest       *decimal.Decimal `json:"latest,omitempty"`
	Delta        *decimal.Decimal `json:"delta,omitempty"`
	SnapshotID   *uuid.UUID       `json:"snapshot_id,omitempty"`
	SnapshotAt   *time.Time       `json:"snapshot_at,omitempty"`
}
