package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	accountModel "sepaku_backend/internals/features/finance/accounts/model"
	"sepaku_backend/internals/features/finance/update_requests/dto"
	"sepaku_backend/internals/features/finance/update_requests/model"
	helper "sepaku_backend/internals/helpers"
	"sepaku_backend/internals/helpers/apperror"
)

type UpdateRequestRepository struct {
	DB *gorm.DB
}

func NewUpdateRequestRepository(db *gorm.DB) *UpdateRequestRepository {
	return &UpdateRequestRepository{DB: db}
}

// Create inserts a pending request. A second pending request for the same
// family trips the partial unique index and comes back as ErrPendingExists.
func (r *UpdateRequestRepository) Create(ctx context.Context, m *model.UpdateRequest) error {
	err := r.DB.WithContext(ctx).Create(m).Error
	if helper.IsUniqueViolation(err) {
		return apperror.ErrPendingExists
	}
	if err != nil {
		return apperror.Storage("create update request", err)
	}
	return nil
}

func (r *UpdateRequestRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.UpdateRequest, error) {
	var m model.UpdateRequest
	err := r.DB.WithContext(ctx).Where("update_request_id = ?", id).Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("update request")
	}
	if err != nil {
		return nil, apperror.Storage("load update request", err)
	}
	return &m, nil
}

func (r *UpdateRequestRepository) HasPending(ctx context.Context, familyID uuid.UUID) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&model.UpdateRequest{}).
		Where("update_request_family_id = ? AND update_request_status = ?", familyID, model.StatusPending).
		Count(&n).Error
	if err != nil {
		return false, apperror.Storage("check pending update request", err)
	}
	return n > 0, nil
}

func (r *UpdateRequestRepository) List(ctx context.Context, q dto.ListQuery) ([]model.UpdateRequest, int64, error) {
	tx := r.DB.WithContext(ctx).Model(&model.UpdateRequest{})
	if q.Status != "" {
		tx = tx.Where("update_request_status = ?", q.Status)
	}
	if q.FamilyID != uuid.Nil {
		tx = tx.Where("update_request_family_id = ?", q.FamilyID)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, apperror.Storage("count update requests", err)
	}
	var rows []model.UpdateRequest
	if err := tx.Order("update_request_created_at DESC").Offset(q.Offset).Limit(q.Limit).Find(&rows).Error; err != nil {
		return nil, 0, apperror.Storage("list update requests", err)
	}
	return rows, total, nil
}

// Decide runs one decision in a single transaction. The request row is
// locked FOR UPDATE and handed to fn; fn mutates it and may return an
// account change. Any error from fn rolls everything back.
func (r *UpdateRequestRepository) Decide(
	ctx context.Context,
	id uuid.UUID,
	fn func(m *model.UpdateRequest) (*dto.AccountChange, error),
) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m model.UpdateRequest
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("update_request_id = ?", id).
			Take(&m).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("update request")
		}
		if err != nil {
			return apperror.Storage("lock update request", err)
		}

		change, err := fn(&m)
		if err != nil {
			return err
		}
		if err := tx.Save(&m).Error; err != nil {
			return apperror.Storage("save update request", err)
		}
		if change != nil {
			return applyAccountChange(tx, change)
		}
		return nil
	})
}

// applyAccountChange updates the family's oldest account or creates one.
func applyAccountChange(tx *gorm.DB, ch *dto.AccountChange) error {
	var acc accountModel.Account
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("account_family_id = ?", ch.FamilyID).
		Order("account_created_at ASC").
		Take(&acc).Error

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		acc = ch.NewAccount()
		if err := tx.Create(&acc).Error; err != nil {
			return apperror.Storage("create account from update request", err)
		}
		return nil
	case err != nil:
		return apperror.Storage("lock account", err)
	}

	ch.Apply(&acc)
	if err := tx.Save(&acc).Error; err != nil {
		return apperror.Storage("update account from update request", err)
	}
	return nil
}
