// file: internals/features/finance/school/model/school_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =========================================================
// READ MODEL
// Tables owned by the school administration; finance only reads them.
// =========================================================

type Family struct {
	FamilyID   uuid.UUID `gorm:"column:family_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"family_id"`
	FamilyName string    `gorm:"column:family_name;type:varchar(160);not null" json:"family_name"`
}

func (Family) TableName() string { return "families" }

type Student struct {
	StudentID        uuid.UUID `gorm:"column:student_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"student_id"`
	StudentFamilyID  uuid.UUID `gorm:"column:student_family_id;type:uuid;not null;index" json:"student_family_id"`
	StudentFirstName string    `gorm:"column:student_first_name;type:varchar(80);not null" json:"student_first_name"`
	StudentLastName  string    `gorm:"column:student_last_name;type:varchar(80);not null" json:"student_last_name"`
}

func (Student) TableName() string { return "students" }

func (s Student) FullName() string {
	if s.StudentLastName == "" {
		return s.StudentFirstName
	}
	return s.StudentFirstName + " " + s.StudentLastName
}

type Course struct {
	CourseID         uuid.UUID       `gorm:"column:course_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"course_id"`
	CourseName       string          `gorm:"column:course_name;type:varchar(120);not null" json:"course_name"`
	CourseMonthlyFee decimal.Decimal `gorm:"column:course_monthly_fee;type:numeric(12,2);not null;default:0" json:"course_monthly_fee"`
}

func (Course) TableName() string { return "courses" }

type SchoolYear struct {
	SchoolYearID        uuid.UUID `gorm:"column:school_year_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"school_year_id"`
	SchoolYearName      string    `gorm:"column:school_year_name;type:varchar(40);not null" json:"school_year_name"`
	SchoolYearStartDate time.Time `gorm:"column:school_year_start_date;type:date;not null" json:"school_year_start_date"`
	SchoolYearEndDate   time.Time `gorm:"column:school_year_end_date;type:date;not null" json:"school_year_end_date"`
}

func (SchoolYear) TableName() string { return "school_years" }

type Enrollment struct {
	EnrollmentID           uuid.UUID  `gorm:"column:enrollment_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"enrollment_id"`
	EnrollmentStudentID    uuid.UUID  `gorm:"column:enrollment_student_id;type:uuid;not null;index" json:"enrollment_student_id"`
	EnrollmentCourseID     uuid.UUID  `gorm:"column:enrollment_course_id;type:uuid;not null;index" json:"enrollment_course_id"`
	EnrollmentSchoolYearID uuid.UUID  `gorm:"column:enrollment_school_year_id;type:uuid;not null;index" json:"enrollment_school_year_id"`
	EnrollmentEnrolledAt   time.Time  `gorm:"column:enrollment_enrolled_at;type:date;not null" json:"enrollment_enrolled_at"`
	EnrollmentUnenrolledAt *time.Time `gorm:"column:enrollment_unenrolled_at;type:date" json:"enrollment_unenrolled_at,omitempty"`
}

func (Enrollment) TableName() string { return "enrollments" }
