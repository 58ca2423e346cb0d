package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"sepaku_backend/internals/features/finance/balances/dto"
	"sepaku_backend/internals/helpers/apperror"
)

// BalanceRepository reads the raw lines behind a balance. familyID nil means
// every family of the year.
type BalanceRepository struct {
	DB *gorm.DB
}

func NewBalanceRepository(db *gorm.DB) *BalanceRepository {
	return &BalanceRepository{DB: db}
}

func (r *BalanceRepository) Enrollments(ctx context.Context, yearID uuid.UUID, familyID *uuid.UUID) ([]dto.EnrollmentRow, error) {
	q := r.DB.WithContext(ctx).
		Table("enrollments AS e").
		Select(`s.student_family_id AS family_id,
			e.enrollment_id AS enrollment_id,
			s.student_id AS student_id,
			s.student_first_name AS first_name,
			s.student_last_name AS last_name,
			c.course_id AS course_id,
			c.course_name AS course_name,
			c.course_monthly_fee AS monthly_fee,
			e.enrollment_enrolled_at AS enrolled_at,
			e.enrollment_unenrolled_at AS unenrolled_at`).
		Joins("JOIN students s ON s.student_id = e.enrollment_student_id").
		Joins("JOIN courses c ON c.course_id = e.enrollment_course_id").
		Where("e.enrollment_school_year_id = ?", yearID)
	if familyID != nil {
		q = q.Where("s.student_family_id = ?", *familyID)
	}

	var rows []dto.EnrollmentRow
	if err := q.Order("s.student_last_name, s.student_first_name, c.course_name").Scan(&rows).Error; err != nil {
		return nil, apperror.Storage("load enrollments", err)
	}
	return rows, nil
}

// Payments returns linked payments only; unlinked ones belong to no family yet.
func (r *BalanceRepository) Payments(ctx context.Context, yearID uuid.UUID, familyID *uuid.UUID) ([]dto.PaymentRow, error) {
	q := r.DB.WithContext(ctx).
		Table("sepa_payments AS p").
		Select(`a.account_family_id AS family_id,
			p.payment_id AS payment_id,
			p.payment_account_id AS account_id,
			p.payment_booking_date AS booking_date,
			p.payment_payer_raw AS payer,
			p.payment_amount AS amount`).
		Joins("JOIN sepa_accounts a ON a.account_id = p.payment_account_id").
		Where("p.payment_school_year_id = ? AND p.payment_deleted_at IS NULL", yearID)
	if familyID != nil {
		q = q.Where("a.account_family_id = ?", *familyID)
	}

	var rows []dto.PaymentRow
	if err := q.Order("p.payment_booking_date").Scan(&rows).Error; err != nil {
		return nil, apperror.Storage("load payments", err)
	}
	return rows, nil
}

// Adjustments merges adjustments and discounts of the year.
func (r *BalanceRepository) Adjustments(ctx context.Context, yearID uuid.UUID, familyID *uuid.UUID) ([]dto.AdjustmentRow, error) {
	adj := r.DB.WithContext(ctx).
		Table("sepa_adjustments AS x").
		Select(`a.account_family_id AS family_id,
			x.adjustment_id AS id,
			x.adjustment_account_id AS account_id,
			'adjustment' AS kind,
			x.adjustment_description AS description,
			x.adjustment_amount AS amount`).
		Joins("JOIN sepa_accounts a ON a.account_id = x.adjustment_account_id").
		Where("x.adjustment_school_year_id = ? AND x.adjustment_deleted_at IS NULL", yearID)
	disc := r.DB.WithContext(ctx).
		Table("sepa_discounts AS x").
		Select(`a.account_family_id AS family_id,
			x.discount_id AS id,
			x.discount_account_id AS account_id,
			'discount' AS kind,
			x.discount_description AS description,
			x.discount_amount AS amount`).
		Joins("JOIN sepa_accounts a ON a.account_id = x.discount_account_id").
		Where("x.discount_school_year_id = ? AND x.discount_deleted_at IS NULL", yearID)
	if familyID != nil {
		adj = adj.Where("a.account_family_id = ?", *familyID)
		disc = disc.Where("a.account_family_id = ?", *familyID)
	}

	var rows []dto.AdjustmentRow
	if err := adj.Scan(&rows).Error; err != nil {
		return nil, apperror.Storage("load adjustments", err)
	}
	var discounts []dto.AdjustmentRow
	if err := disc.Scan(&discounts).Error; err != nil {
		return nil, apperror.Storage("load discounts", err)
	}
	return append(rows, discounts...), nil
}
