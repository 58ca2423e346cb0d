package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"sepaku_backend/internals/features/finance/accounts/dto"
	"sepaku_backend/internals/features/finance/accounts/model"
	"sepaku_backend/internals/helpers/apperror"
)

type AccountRepository struct {
	DB *gorm.DB
}

func NewAccountRepository(db *gorm.DB) *AccountRepository {
	return &AccountRepository{DB: db}
}

func (r *AccountRepository) Create(ctx context.Context, m *model.Account) error {
	if err := r.DB.WithContext(ctx).Create(m).Error; err != nil {
		return apperror.Storage("create account", err)
	}
	return nil
}

func (r *AccountRepository) Save(ctx context.Context, m *model.Account) error {
	if err := r.DB.WithContext(ctx).Save(m).Error; err != nil {
		return apperror.Storage("save account", err)
	}
	return nil
}

func (r *AccountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.DB.WithContext(ctx).Where("account_id = ?", id).Delete(&model.Account{})
	if res.Error != nil {
		return apperror.Storage("delete account", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperror.NotFound("account")
	}
	return nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Account, error) {
	var m model.Account
	err := r.DB.WithContext(ctx).Where("account_id = ?", id).Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("account")
	}
	if err != nil {
		return nil, apperror.Storage("load account", err)
	}
	return &m, nil
}

// ListByFamily returns the family's accounts, oldest first.
func (r *AccountRepository) ListByFamily(ctx context.Context, familyID uuid.UUID) ([]model.Account, error) {
	var rows []model.Account
	err := r.DB.WithContext(ctx).
		Where("account_family_id = ?", familyID).
		Order("account_created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, apperror.Storage("list family accounts", err)
	}
	return rows, nil
}

func (r *AccountRepository) ListAll(ctx context.Context) ([]model.Account, error) {
	var rows []model.Account
	if err := r.DB.WithContext(ctx).Order("account_created_at ASC").Find(&rows).Error; err != nil {
		return nil, apperror.Storage("list accounts", err)
	}
	return rows, nil
}

func (r *AccountRepository) List(ctx context.Context, q dto.ListAccountsQuery) ([]model.Account, int64, error) {
	tx := r.DB.WithContext(ctx).Model(&model.Account{})
	if s := strings.TrimSpace(q.Q); s != "" {
		tx = tx.Where("account_payer ILIKE ?", "%"+s+"%")
	}
	if q.FamilyID != uuid.Nil {
		tx = tx.Where("account_family_id = ?", q.FamilyID)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, apperror.Storage("count accounts", err)
	}

	var rows []model.Account
	if err := tx.Order("account_payer ASC").Offset(q.Offset).Limit(q.Limit).Find(&rows).Error; err != nil {
		return nil, 0, apperror.Storage("list accounts", err)
	}
	return rows, total, nil
}
