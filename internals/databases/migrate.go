package database

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	accountModel "sepaku_backend/internals/features/finance/accounts/model"
	adjustmentModel "sepaku_backend/internals/features/finance/adjustments/model"
	customFieldModel "sepaku_backend/internals/features/finance/custom_fields/model"
	issueModel "sepaku_backend/internals/features/finance/issues/model"
	paymentModel "sepaku_backend/internals/features/finance/payments/model"
	schoolModel "sepaku_backend/internals/features/finance/school/model"
	snapshotModel "sepaku_backend/internals/features/finance/snapshots/model"
	updateRequestModel "sepaku_backend/internals/features/finance/update_requests/model"
)

// Models lists every table this service migrates, school read model first.
func Models() []any {
	return []any{
		&schoolModel.Family{},
		&schoolModel.Student{},
		&schoolModel.Course{},
		&schoolModel.SchoolYear{},
		&schoolModel.Enrollment{},

		&customFieldModel.CustomFieldDefinition{},
		&accountModel.Account{},
		&paymentModel.Payment{},
		&adjustmentModel.Adjustment{},
		&adjustmentModel.Discount{},
		&issueModel.IssueSetting{},
		&updateRequestModel.UpdateRequest{},
		&snapshotModel.BalanceSnapshot{},
	}
}

// rawStatements run after AutoMigrate for what struct tags cannot express.
// gen_random_uuid() defaults need Postgres 13 or newer.
var rawStatements = []string{
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_update_request_pending
		ON sepa_account_update_requests (update_request_family_id)
		WHERE update_request_status = 'pending'`,
}

func Migrate(ctx context.Context, db *gorm.DB, log zerolog.Logger) error {
	tx := db.WithContext(ctx)
	if err := tx.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	for _, stmt := range rawStatements {
		if err := tx.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	log.Info().Int("tables", len(Models())).Msg("schema migrated")
	return nil
}
