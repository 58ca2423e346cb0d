package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateAdjustmentRequest serves both adjustments and discounts; for
// discounts the amount must be positive.
type CreateAdjustmentRequest struct {
	SchoolYearID uuid.UUID       `json:"school_year_id" validate:"required"`
	Amount       decimal.Decimal `json:"amount"`
	Description  string          `json:"description" validate:"required,max=200"`
	Note         *string         `json:"note" validate:"omitempty,max=2000"`
}

type PatchAdjustmentRequest struct {
	SchoolYearID *uuid.UUID       `json:"school_year_id"`
	Amount       *decimal.Decimal `json:"amount"`
	Description  *string          `json:"description" validate:"omitempty,min=1,max=200"`
	Note         *string          `json:"note" validate:"omitempty,max=2000"`
}
