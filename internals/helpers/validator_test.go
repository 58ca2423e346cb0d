package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sepaku_backend/internals/helpers/apperror"
)

type sampleInput struct {
	Payer string  `json:"payer" validate:"required,max=120"`
	IBAN  string  `json:"iban" validate:"required,iban"`
	BIC   *string `json:"bic" validate:"omitempty,bic"`
}

func TestValidateStruct(t *testing.T) {
	v := NewValidator()

	require.NoError(t, ValidateStruct(v, sampleInput{Payer: "Jane Doe", IBAN: "DE89 3704 0044 0532 0130 00"}))

	bic := "XX"
	err := ValidateStruct(v, sampleInput{IBAN: "DE00 1234", BIC: &bic})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))

	var ae *apperror.Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, []string{"required"}, ae.Fields["payer"])
	assert.Equal(t, []string{"iban"}, ae.Fields["iban"])
	assert.Equal(t, []string{"bic"}, ae.Fields["bic"])
}
