package service

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"sepaku_backend/internals/features/finance/custom_fields/dto"
	"sepaku_backend/internals/features/finance/custom_fields/model"
	helper "sepaku_backend/internals/helpers"
	"sepaku_backend/internals/helpers/apperror"
)

type Repository interface {
	List(ctx context.Context) ([]model.CustomFieldDefinition, error)
	Create(ctx context.Context, m *model.CustomFieldDefinition) error
}

type Service struct {
	repo     Repository
	validate *validator.Validate
	log      zerolog.Logger
}

func NewService(repo Repository, v *validator.Validate, log zerolog.Logger) *Service {
	return &Service{repo: repo, validate: v, log: log.With().Str("svc", "custom_fields").Logger()}
}

var reFieldKey = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

func (s *Service) List(ctx context.Context) ([]model.CustomFieldDefinition, error) {
	return s.repo.List(ctx)
}

func (s *Service) Create(ctx context.Context, req dto.CreateCustomFieldRequest) (*model.CustomFieldDefinition, error) {
	if err := helper.ValidateStruct(s.validate, req); err != nil {
		return nil, err
	}
	m, err := req.ToModel()
	if err != nil {
		return nil, apperror.Validation("invalid options")
	}
	if !reFieldKey.MatchString(m.CustomFieldKey) {
		return nil, apperror.ValidationFields("validation failed", map[string][]string{
			"custom_field_key": {"must start with a letter and contain only a-z, 0-9 and _"},
		})
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	s.log.Info().Str("key", m.CustomFieldKey).Msg("custom field created")
	return m, nil
}

// Validate checks values against the current definitions and returns the
// normalized JSON to store. Empty input with no required field yields nil.
func (s *Service) Validate(ctx context.Context, values map[string]any) (datatypes.JSON, error) {
	defs, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	normalized, err := ValidateValues(defs, values)
	if err != nil {
		return nil, err
	}
	if len(normalized) == 0 {
		return nil, nil
	}
	raw, err := sonic.Marshal(normalized)
	if err != nil {
		return nil, apperror.Validation("custom fields are not serializable")
	}
	return datatypes.JSON(raw), nil
}

// ValidateValues checks every value against its definition. Unknown keys and
// missing required fields are reported per field as "custom_fields.<key>".
func ValidateValues(defs []model.CustomFieldDefinition, values map[string]any) (map[string]any, error) {
	byKey := make(map[string]model.CustomFieldDefinition, len(defs))
	for _, d := range defs {
		byKey[d.CustomFieldKey] = d
	}

	out := make(map[string]any, len(values))
	fields := map[string][]string{}

	for key, v := range values {
		def, ok := byKey[key]
		if !ok {
			fields["custom_fields."+key] = append(fields["custom_fields."+key], "unknown field")
			continue
		}
		if isBlank(v) {
			continue
		}
		nv, msg := coerce(def, v)
		if msg != "" {
			fields["custom_fields."+key] = append(fields["custom_fields."+key], msg)
			continue
		}
		out[key] = nv
	}

	for _, d := range defs {
		if !d.CustomFieldRequired {
			continue
		}
		if _, ok := out[d.CustomFieldKey]; !ok {
			k := "custom_fields." + d.CustomFieldKey
			if len(fields[k]) == 0 {
				fields[k] = []string{"required"}
			}
		}
	}

	if len(fields) > 0 {
		return nil, apperror.ValidationFields("invalid custom fields", fields)
	}
	return out, nil
}

func isBlank(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	}
	return false
}

func coerce(def model.CustomFieldDefinition, v any) (any, string) {
	switch def.CustomFieldType {
	case model.FieldTypeText:
		s, ok := v.(string)
		if !ok {
			return nil, "must be text"
		}
		return strings.TrimSpace(s), ""

	case model.FieldTypeNumber:
		switch t := v.(type) {
		case float64:
			return t, ""
		case int:
			return float64(t), ""
		case string:
			d, err := decimal.NewFromString(strings.TrimSpace(t))
			if err != nil {
				return nil, "must be a number"
			}
			return d.InexactFloat64(), ""
		}
		return nil, "must be a number"

	case model.FieldTypeDate:
		s, ok := v.(string)
		if !ok {
			return nil, "must be a date (YYYY-MM-DD)"
		}
		d, err := time.Parse("2006-01-02", strings.TrimSpace(s))
		if err != nil {
			return nil, "must be a date (YYYY-MM-DD)"
		}
		return d.Format("2006-01-02"), ""

	case model.FieldTypeSelect:
		s, ok := v.(string)
		if !ok {
			return nil, "must be one of the options"
		}
		var opts []string
		if len(def.CustomFieldOptions) > 0 {
			if err := sonic.Unmarshal(def.CustomFieldOptions, &opts); err != nil {
				return nil, "field has invalid options"
			}
		}
		for _, o := range opts {
			if o == s {
				return s, ""
			}
		}
		return nil, fmt.Sprintf("must be one of %s", strings.Join(opts, ", "))

	case model.FieldTypeCheckbox:
		switch t := v.(type) {
		case bool:
			return t, ""
		case string:
			b, err := strconv.ParseBool(strings.TrimSpace(t))
			if err != nil {
				return nil, "must be true or false"
			}
			return b, ""
		}
		return nil, "must be true or false"
	}
	return nil, "unsupported field type"
}
