package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"sepaku_backend/internals/features/finance/payments/dto"
	"sepaku_backend/internals/features/finance/payments/model"
	helper "sepaku_backend/internals/helpers"
	"sepaku_backend/internals/helpers/apperror"
)

type PaymentRepository struct {
	DB *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{DB: db}
}

func (r *PaymentRepository) Create(ctx context.Context, m *model.Payment) error {
	if err := r.DB.WithContext(ctx).Create(m).Error; err != nil {
		if helper.IsForeignKeyViolation(err) {
			return apperror.NotFound("account or school year")
		}
		return apperror.Storage("create payment", err)
	}
	return nil
}

func (r *PaymentRepository) Save(ctx context.Context, m *model.Payment) error {
	if err := r.DB.WithContext(ctx).Save(m).Error; err != nil {
		return apperror.Storage("save payment", err)
	}
	return nil
}

func (r *PaymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.DB.WithContext(ctx).Where("payment_id = ?", id).Delete(&model.Payment{})
	if res.Error != nil {
		return apperror.Storage("delete payment", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperror.NotFound("payment")
	}
	return nil
}

func (r *PaymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Payment, error) {
	var m model.Payment
	err := r.DB.WithContext(ctx).Where("payment_id = ?", id).Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("payment")
	}
	if err != nil {
		return nil, apperror.Storage("load payment", err)
	}
	return &m, nil
}

// SetAccount links (accountID != nil) or unlinks a payment without touching other columns.
func (r *PaymentRepository) SetAccount(ctx context.Context, id uuid.UUID, accountID *uuid.UUID) error {
	res := r.DB.WithContext(ctx).Model(&model.Payment{}).
		Where("payment_id = ?", id).
		Updates(map[string]any{
			"payment_account_id": accountID,
			"payment_updated_at": time.Now(),
		})
	if res.Error != nil {
		return apperror.Storage("link payment", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperror.NotFound("payment")
	}
	return nil
}

func (r *PaymentRepository) Unlinked(ctx context.Context, schoolYearID uuid.UUID) ([]model.Payment, error) {
	var rows []model.Payment
	err := r.DB.WithContext(ctx).
		Where("payment_school_year_id = ? AND payment_account_id IS NULL", schoolYearID).
		Order("payment_booking_date ASC").
		Find(&rows).Error
	if err != nil {
		return nil, apperror.Storage("list unlinked payments", err)
	}
	return rows, nil
}

func (r *PaymentRepository) List(ctx context.Context, q dto.ListPaymentsQuery) ([]model.Payment, int64, error) {
	tx := r.DB.WithContext(ctx).Model(&model.Payment{})
	if q.SchoolYearID != uuid.Nil {
		tx = tx.Where("payment_school_year_id = ?", q.SchoolYearID)
	}
	if q.AccountID != uuid.Nil {
		tx = tx.Where("payment_account_id = ?", q.AccountID)
	}
	switch q.Linked {
	case dto.LinkedYes:
		tx = tx.Where("payment_account_id IS NOT NULL")
	case dto.LinkedNo:
		tx = tx.Where("payment_account_id IS NULL")
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, apperror.Storage("count payments", err)
	}
	var rows []model.Payment
	err := tx.Order("payment_booking_date DESC, payment_created_at DESC").
		Offset(q.Offset).Limit(q.Limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, apperror.Storage("list payments", err)
	}
	return rows, total, nil
}
