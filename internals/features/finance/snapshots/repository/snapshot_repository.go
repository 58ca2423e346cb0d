package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"sepaku_backend/internals/features/finance/snapshots/model"
	"sepaku_backend/internals/helpers/apperror"
)

type SnapshotRepository struct {
	DB *gorm.DB
}

func NewSnapshotRepository(db *gorm.DB) *SnapshotRepository {
	return &SnapshotRepository{DB: db}
}

func (r *SnapshotRepository) Create(ctx context.Context, m *model.BalanceSnapshot) error {
	if err := r.DB.WithContext(ctx).Create(m).Error; err != nil {
		return apperror.Storage("create balance snapshot", err)
	}
	return nil
}

// Latest returns the newest snapshot, or nil when none exists.
func (r *SnapshotRepository) Latest(ctx context.Context, familyID, yearID uuid.UUID) (*model.BalanceSnapshot, error) {
	var m model.BalanceSnapshot
	err := r.DB.WithContext(ctx).
		Where("balance_snapshot_family_id = ? AND balance_snapshot_school_year_id = ?", familyID, yearID).
		Order("balance_snapshot_created_at DESC").
		Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperror.Storage("load latest balance snapshot", err)
	}
	return &m, nil
}

func (r *SnapshotRepository) List(ctx context.Context, familyID, yearID uuid.UUID) ([]model.BalanceSnapshot, error) {
	var rows []model.BalanceSnapshot
	err := r.DB.WithContext(ctx).
		Where("balance_snapshot_family_id = ? AND balance_snapshot_school_year_id = ?", familyID, yearID).
		Order("balance_snapshot_created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, apperror.Storage("list balance snapshots", err)
	}
	return rows, nil
}
