// file: internals/features/finance/custom_fields/model/custom_field_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeNumber   FieldType = "number"
	FieldTypeDate     FieldType = "date"
	FieldTypeSelect   FieldType = "select"
	FieldTypeCheckbox FieldType = "checkbox"
)

func (t FieldType) Valid() bool {
	switch t {
	case FieldTypeText, FieldTypeNumber, FieldTypeDate, FieldTypeSelect, FieldTypeCheckbox:
		return true
	}
	return false
}

// CustomFieldDefinition describes one school-defined field stored in
// account_custom_fields (and in update requests) under CustomFieldKey.
type CustomFieldDefinition struct {
	CustomFieldID        uuid.UUID      `gorm:"column:custom_field_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"custom_field_id"`
	CustomFieldKey       string         `gorm:"column:custom_field_key;type:varchar(60);not null;uniqueIndex" json:"custom_field_key"`
	CustomFieldLabel     string         `gorm:"column:custom_field_label;type:varchar(120);not null" json:"custom_field_label"`
	CustomFieldType      FieldType      `gorm:"column:custom_field_type;type:varchar(20);not null" json:"custom_field_type"`
	CustomFieldOptions   datatypes.JSON `gorm:"column:custom_field_options;type:jsonb" json:"custom_field_options,omitempty"`
	CustomFieldRequired  bool           `gorm:"column:custom_field_required;not null;default:false" json:"custom_field_required"`
	CustomFieldSortOrder int            `gorm:"column:custom_field_sort_order;not null;default:0" json:"custom_field_sort_order"`

	CustomFieldCreatedAt time.Time `gorm:"column:custom_field_created_at;not null;default:now()" json:"custom_field_created_at"`
	CustomFieldUpdatedAt time.Time `gorm:"column:custom_field_updated_at;not null;default:now()" json:"custom_field_updated_at"`
}

func (CustomFieldDefinition) TableName() string {
	return "sepa_custom_field_definitions"
}

func (m *CustomFieldDefinition) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if m.CustomFieldCreatedAt.IsZero() {
		m.CustomFieldCreatedAt = now
	}
	m.CustomFieldUpdatedAt = now
	return nil
}

func (m *CustomFieldDefinition) BeforeUpdate(tx *gorm.DB) error {
	m.CustomFieldUpdatedAt = time.Now()
	return nil
}
