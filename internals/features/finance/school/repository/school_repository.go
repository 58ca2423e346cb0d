package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"sepaku_backend/internals/features/finance/school/model"
	"sepaku_backend/internals/helpers/apperror"
)

type SchoolRepository struct {
	DB *gorm.DB
}

func NewSchoolRepository(db *gorm.DB) *SchoolRepository {
	return &SchoolRepository{DB: db}
}

func (r *SchoolRepository) SchoolYear(ctx context.Context, id uuid.UUID) (model.SchoolYear, error) {
	var y model.SchoolYear
	err := r.DB.WithContext(ctx).Where("school_year_id = ?", id).Take(&y).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return y, apperror.NotFound("school year")
	}
	if err != nil {
		return y, apperror.Storage("load school year", err)
	}
	return y, nil
}

func (r *SchoolRepository) FamilyExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var n int64
	if err := r.DB.WithContext(ctx).Model(&model.Family{}).Where("family_id = ?", id).Count(&n).Error; err != nil {
		return false, apperror.Storage("check family", err)
	}
	return n > 0, nil
}

// FamilyNames resolves display names; unknown ids are absent from the map.
func (r *SchoolRepository) FamilyNames(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	out := make(map[uuid.UUID]string, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []model.Family
	if err := r.DB.WithContext(ctx).Where("family_id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, apperror.Storage("load family names", err)
	}
	for _, f := range rows {
		out[f.FamilyID] = f.FamilyName
	}
	return out, nil
}

// ActiveFamily is a family with students still enrolled in a school year.
type ActiveFamily struct {
	FamilyID       uuid.UUID `gorm:"column:family_id"`
	FamilyName     string    `gorm:"column:family_name"`
	ActiveStudents int       `gorm:"column:active_students"`
}

// ActiveFamilies lists families with at least one enrollment in the year that
// has not ended before asOf.
func (r *SchoolRepository) ActiveFamilies(ctx context.Context, yearID uuid.UUID, asOf time.Time) ([]ActiveFamily, error) {
	var rows []ActiveFamily
	err := r.DB.WithContext(ctx).
		Table("enrollments AS e").
		Select(`f.family_id AS family_id,
			f.family_name AS family_name,
			COUNT(DISTINCT s.student_id) AS active_students`).
		Joins("JOIN students s ON s.student_id = e.enrollment_student_id").
		Joins("JOIN families f ON f.family_id = s.student_family_id").
		Where("e.enrollment_school_year_id = ?", yearID).
		Where("(e.enrollment_unenrolled_at IS NULL OR e.enrollment_unenrolled_at >= ?)", asOf.Format("2006-01-02")).
		Group("f.family_id, f.family_name").
		Order("f.family_name").
		Scan(&rows).Error
	if err != nil {
		return nil, apperror.Storage("list active families", err)
	}
	return rows, nil
}
