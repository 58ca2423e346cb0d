package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const DateLayout = "2006-01-02"

// CreateAccountRequest carries the raw IBAN/BIC; only the masked IBAN is persisted.
type CreateAccountRequest struct {
	FamilyID     uuid.UUID      `json:"account_family_id" validate:"required"`
	Payer        string         `json:"account_payer" validate:"required,max=160"`
	IBAN         *string        `json:"iban" validate:"omitempty,iban"`
	BIC          *string        `json:"bic" validate:"omitempty,bic"`
	SignedDate   *string        `json:"account_signed_date" validate:"omitempty,datetime=2006-01-02"`
	Note         *string        `json:"account_note" validate:"omitempty,max=2000"`
	CustomFields map[string]any `json:"account_custom_fields"`
}

type PatchAccountRequest struct {
	Payer        *string         `json:"account_payer" validate:"omitempty,min=1,max=160"`
	IBAN         *string         `json:"iban" validate:"omitempty,iban"`
	BIC          *string         `json:"bic" validate:"omitempty,bic"`
	SignedDate   *string         `json:"account_signed_date" validate:"omitempty,datetime=2006-01-02"`
	Note         *string         `json:"account_note" validate:"omitempty,max=2000"`
	CustomFields *map[string]any `json:"account_custom_fields"`
}

type ListAccountsQuery struct {
	Q        string
	FamilyID uuid.UUID
	Offset   int
	Limit    int
}

// ParseDate parses YYYY-MM-DD; nil or blank gives nil.
func ParseDate(s *string) (*time.Time, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, strings.TrimSpace(*s))
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func TrimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
