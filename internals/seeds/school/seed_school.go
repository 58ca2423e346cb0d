package school

import (
	"context"
	"fmt"
	"os"

	"github.com/bytedance/sonic"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"sepaku_backend/internals/features/finance/school/model"
)

// SchoolSeed mirrors the school administration export used for local setups.
type SchoolSeed struct {
	Families    []model.Family     `json:"families"`
	Students    []model.Student    `json:"students"`
	Courses     []model.Course     `json:"courses"`
	SchoolYears []model.SchoolYear `json:"school_years"`
	Enrollments []model.Enrollment `json:"enrollments"`
}

func (s SchoolSeed) rows() int {
	return len(s.Families) + len(s.Students) + len(s.Courses) + len(s.SchoolYears) + len(s.Enrollments)
}

func LoadSchoolSeed(path string) (SchoolSeed, error) {
	var seed SchoolSeed
	raw, err := os.ReadFile(path)
	if err != nil {
		return seed, fmt.Errorf("read %s: %w", path, err)
	}
	if err := sonic.Unmarshal(raw, &seed); err != nil {
		return seed, fmt.Errorf("decode %s: %w", path, err)
	}
	return seed, seed.check()
}

// check rejects references the database would only catch halfway through the insert.
func (s SchoolSeed) check() error {
	families := map[string]bool{}
	for _, f := range s.Families {
		families[f.FamilyID.String()] = true
	}
	students := map[string]bool{}
	for _, st := range s.Students {
		if !families[st.StudentFamilyID.String()] {
			return fmt.Errorf("student %s: unknown family %s", st.StudentID, st.StudentFamilyID)
		}
		students[st.StudentID.String()] = true
	}
	courses := map[string]bool{}
	for _, c := range s.Courses {
		courses[c.CourseID.String()] = true
	}
	years := map[string]bool{}
	for _, y := range s.SchoolYears {
		if !y.SchoolYearEndDate.After(y.SchoolYearStartDate) {
			return fmt.Errorf("school year %s: end must be after start", y.SchoolYearName)
		}
		years[y.SchoolYearID.String()] = true
	}
	for _, e := range s.Enrollments {
		switch {
		case !students[e.EnrollmentStudentID.String()]:
			return fmt.Errorf("enrollment %s: unknown student", e.EnrollmentID)
		case !courses[e.EnrollmentCourseID.String()]:
			return fmt.Errorf("enrollment %s: unknown course", e.EnrollmentID)
		case !years[e.EnrollmentSchoolYearID.String()]:
			return fmt.Errorf("enrollment %s: unknown school year", e.EnrollmentID)
		}
	}
	return nil
}

// SeedSchoolFromJSON inserts the export in dependency order; rows that already exist are skipped.
func SeedSchoolFromJSON(ctx context.Context, db *gorm.DB, filePath string, log zerolog.Logger) error {
	log.Info().Str("file", filePath).Msg("reading school seed")

	seed, err := LoadSchoolSeed(filePath)
	if err != nil {
		return err
	}
	if seed.rows() == 0 {
		log.Info().Msg("school seed is empty, nothing to insert")
		return nil
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		steps := []struct {
			name string
			rows any
			n    int
		}{
			{"families", &seed.Families, len(seed.Families)},
			{"students", &seed.Students, len(seed.Students)},
			{"courses", &seed.Courses, len(seed.Courses)},
			{"school_years", &seed.SchoolYears, len(seed.SchoolYears)},
			{"enrollments", &seed.Enrollments, len(seed.Enrollments)},
		}
		for _, s := range steps {
			if s.n == 0 {
				continue
			}
			res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(s.rows)
			if res.Error != nil {
				return fmt.Errorf("seed %s: %w", s.name, res.Error)
			}
			log.Info().Str("table", s.name).Int64("inserted", res.RowsAffected).Int("skipped", s.n-int(res.RowsAffected)).Msg("seeded")
		}
		return nil
	})
}
