package helper

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"sepaku_backend/internals/helpers/apperror"
	"sepaku_backend/internals/helpers/secure"
)

// NewValidator returns a validator that reports JSON field names and knows
// the "iban" and "bic" tags.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("iban", func(fl validator.FieldLevel) bool {
		return secure.ValidIBAN(fl.Field().String())
	})
	_ = v.RegisterValidation("bic", func(fl validator.FieldLevel) bool {
		return secure.ValidBIC(fl.Field().String())
	})
	return v
}

// ValidateStruct runs v on s and converts failures into a validation apperror
// carrying per-field tags.
func ValidateStruct(v *validator.Validate, s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return apperror.Validation(err.Error())
	}
	fields := make(map[string][]string, len(ve))
	for _, fe := range ve {
		msg := fe.Tag()
		if fe.Param() != "" {
			msg += "=" + fe.Param()
		}
		fields[fe.Field()] = append(fields[fe.Field()], msg)
	}
	return apperror.ValidationFields("validation failed", fields)
}
