package school

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSchoolSeedBundledData(t *testing.T) {
	seed, err := LoadSchoolSeed("data_school.json")
	require.NoError(t, err)

	assert.Len(t, seed.Families, 3)
	assert.Len(t, seed.Enrollments, 4)
	assert.Equal(t, "45", seed.Courses[0].CourseMonthlyFee.String())
	require.NotNil(t, seed.Enrollments[2].EnrollmentUnenrolledAt)
	assert.Equal(t, 2025, seed.Enrollments[2].EnrollmentUnenrolledAt.Year())
}

func TestLoadSchoolSeedRejectsDanglingStudent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"families": [],
		"students": [{"student_id": "7c1e9a52-5b8f-4d1e-a3a1-2f0e6c9d1b01", "student_family_id": "0b6f3c4e-2d0c-4f63-9d43-0d6f0b1b7a01", "student_first_name": "Lena"}]
	}`), 0o600))

	_, err := LoadSchoolSeed(path)
	assert.ErrorContains(t, err, "unknown family")
}

func TestLoadSchoolSeedRejectsInvertedYear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"school_years": [{"school_year_id": "5e7d2f10-aaaa-4bbb-8ccc-000000002024", "school_year_name": "2024/25",
			"school_year_start_date": "2025-06-30T00:00:00Z", "school_year_end_date": "2024-09-01T00:00:00Z"}]
	}`), 0o600))

	_, err := LoadSchoolSeed(path)
	assert.ErrorContains(t, err, "end must be after start")
}
