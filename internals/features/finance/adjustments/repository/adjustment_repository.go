package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"sepaku_backend/internals/features/finance/adjustments/model"
	"sepaku_backend/internals/helpers/apperror"
)

type AdjustmentRepository struct {
	DB *gorm.DB
}

func NewAdjustmentRepository(db *gorm.DB) *AdjustmentRepository {
	return &AdjustmentRepository{DB: db}
}

/* =========================
   Adjustments
========================= */

func (r *AdjustmentRepository) CreateAdjustment(ctx context.Context, m *model.Adjustment) error {
	if err := r.DB.WithContext(ctx).Create(m).Error; err != nil {
		return apperror.Storage("create adjustment", err)
	}
	return nil
}

func (r *AdjustmentRepository) SaveAdjustment(ctx context.Context, m *model.Adjustment) error {
	if err := r.DB.WithContext(ctx).Save(m).Error; err != nil {
		return apperror.Storage("save adjustment", err)
	}
	return nil
}

func (r *AdjustmentRepository) DeleteAdjustment(ctx context.Context, id uuid.UUID) error {
	res := r.DB.WithContext(ctx).Where("adjustment_id = ?", id).Delete(&model.Adjustment{})
	if res.Error != nil {
		return apperror.Storage("delete adjustment", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperror.NotFound("adjustment")
	}
	return nil
}

func (r *AdjustmentRepository) GetAdjustment(ctx context.Context, id uuid.UUID) (*model.Adjustment, error) {
	var m model.Adjustment
	err := r.DB.WithContext(ctx).Where("adjustment_id = ?", id).Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("adjustment")
	}
	if err != nil {
		return nil, apperror.Storage("load adjustment", err)
	}
	return &m, nil
}

// ListAdjustments filters by year only when yearID is set.
func (r *AdjustmentRepository) ListAdjustments(ctx context.Context, accountID, yearID uuid.UUID) ([]model.Adjustment, error) {
	tx := r.DB.WithContext(ctx).Where("adjustment_account_id = ?", accountID)
	if yearID != uuid.Nil {
		tx = tx.Where("adjustment_school_year_id = ?", yearID)
	}
	var rows []model.Adjustment
	if err := tx.Order("adjustment_created_at ASC").Find(&rows).Error; err != nil {
		return nil, apperror.Storage("list adjustments", err)
	}
	return rows, nil
}

/* =========================
   Discounts
========================= */

func (r *AdjustmentRepository) CreateDiscount(ctx context.Context, m *model.Discount) error {
	if err := r.DB.WithContext(ctx).Create(m).Error; err != nil {
		return apperror.Storage("create discount", err)
	}
	return nil
}

func (r *AdjustmentRepository) SaveDiscount(ctx context.Context, m *model.Discount) error {
	if err := r.DB.WithContext(ctx).Save(m).Error; err != nil {
		return apperror.Storage("save discount", err)
	}
	return nil
}

func (r *AdjustmentRepository) DeleteDiscount(ctx context.Context, id uuid.UUID) error {
	res := r.DB.WithContext(ctx).Where("discount_id = ?", id).Delete(&model.Discount{})
	if res.Error != nil {
		return apperror.Storage("delete discount", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperror.NotFound("discount")
	}
	return nil
}

func (r *AdjustmentRepository) GetDiscount(ctx context.Context, id uuid.UUID) (*model.Discount, error) {
	var m model.Discount
	err := r.DB.WithContext(ctx).Where("discount_id = ?", id).Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("discount")
	}
	if err != nil {
		return nil, apperror.Storage("load discount", err)
	}
	return &m, nil
}

func (r *AdjustmentRepository) ListDiscounts(ctx context.Context, accountID, yearID uuid.UUID) ([]model.Discount, error) {
	tx := r.DB.WithContext(ctx).Where("discount_account_id = ?", accountID)
	if yearID != uuid.Nil {
		tx = tx.Where("discount_school_year_id = ?", yearID)
	}
	var rows []model.Discount
	if err := tx.Order("discount_created_at ASC").Find(&rows).Error; err != nil {
		return nil, apperror.Storage("list discounts", err)
	}
	return rows, nil
}
