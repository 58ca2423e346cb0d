package seeds

import (
	"context"
	"path/filepath"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	school "sepaku_backend/internals/seeds/school"
)

func RunAllSeeds(ctx context.Context, db *gorm.DB, dir string, log zerolog.Logger) error {
	//* School read model
	if err := school.SeedSchoolFromJSON(ctx, db, filepath.Join(dir, "school", "data_school.json"), log); err != nil {
		return err
	}
	return nil
}
