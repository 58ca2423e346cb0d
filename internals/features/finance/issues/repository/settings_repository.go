package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"sepaku_backend/internals/features/finance/issues/model"
	"sepaku_backend/internals/helpers/apperror"
)

type SettingsRepository struct {
	DB *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) *SettingsRepository {
	return &SettingsRepository{DB: db}
}

func (r *SettingsRepository) All(ctx context.Context) ([]model.IssueSetting, error) {
	var rows []model.IssueSetting
	if err := r.DB.WithContext(ctx).Order("issue_setting_key ASC").Find(&rows).Error; err != nil {
		return nil, apperror.Storage("list issue settings", err)
	}
	return rows, nil
}

// InsertMissing inserts the given rows, leaving existing keys untouched.
func (r *SettingsRepository) InsertMissing(ctx context.Context, rows []model.IssueSetting) error {
	if len(rows) == 0 {
		return nil
	}
	err := r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "issue_setting_key"}},
			DoNothing: true,
		}).
		Create(&rows).Error
	if err != nil {
		return apperror.Storage("seed issue settings", err)
	}
	return nil
}

func (r *SettingsRepository) Upsert(ctx context.Context, m *model.IssueSetting) error {
	err := r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "issue_setting_key"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"issue_setting_value",
				"issue_setting_updated_by",
				"issue_setting_updated_at",
			}),
		}).
		Create(m).Error
	if err != nil {
		return apperror.Storage("save issue setting", err)
	}
	return nil
}
