package dto

import (
	"strings"

	"github.com/bytedance/sonic"
	"gorm.io/datatypes"

	"sepaku_backend/internals/features/finance/custom_fields/model"
)

type CreateCustomFieldRequest struct {
	Key       string   `json:"custom_field_key" validate:"required,max=60"`
	Label     string   `json:"custom_field_label" validate:"required,max=120"`
	Type      string   `json:"custom_field_type" validate:"required,oneof=text number date select checkbox"`
	Options   []string `json:"custom_field_options" validate:"required_if=Type select,dive,required"`
	Required  bool     `json:"custom_field_required"`
	SortOrder int      `json:"custom_field_sort_order"`
}

func (r CreateCustomFieldRequest) ToModel() (*model.CustomFieldDefinition, error) {
	m := &model.CustomFieldDefinition{
		CustomFieldKey:       strings.ToLower(strings.TrimSpace(r.Key)),
		CustomFieldLabel:     strings.TrimSpace(r.Label),
		CustomFieldType:      model.FieldType(r.Type),
		CustomFieldRequired:  r.Required,
		CustomFieldSortOrder: r.SortOrder,
	}
	if len(r.Options) > 0 {
		raw, err := sonic.Marshal(r.Options)
		if err != nil {
			return nil, err
		}
		m.CustomFieldOptions = datatypes.JSON(raw)
	}
	return m, nil
}
