package repository

import (
	"context"

	"gorm.io/gorm"

	"sepaku_backend/internals/features/finance/custom_fields/model"
	helper "sepaku_backend/internals/helpers"
	"sepaku_backend/internals/helpers/apperror"
)

type CustomFieldRepository struct {
	DB *gorm.DB
}

func NewCustomFieldRepository(db *gorm.DB) *CustomFieldRepository {
	return &CustomFieldRepository{DB: db}
}

func (r *CustomFieldRepository) List(ctx context.Context) ([]model.CustomFieldDefinition, error) {
	var rows []model.CustomFieldDefinition
	err := r.DB.WithContext(ctx).
		Order("custom_field_sort_order ASC, custom_field_key ASC").
		Find(&rows).Error
	if err != nil {
		return nil, apperror.Storage("list custom fields", err)
	}
	return rows, nil
}

func (r *CustomFieldRepository) Create(ctx context.Context, m *model.CustomFieldDefinition) error {
	if err := r.DB.WithContext(ctx).Create(m).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return apperror.Conflict("custom field key already exists")
		}
		return apperror.Storage("create custom field", err)
	}
	return nil
}
