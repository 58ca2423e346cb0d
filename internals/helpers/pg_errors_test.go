package helper

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestSQLState(t *testing.T) {
	pgxErr := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})
	pqErr := fmt.Errorf("insert: %w", &pq.Error{Code: "23503"})

	assert.True(t, IsUniqueViolation(pgxErr))
	assert.False(t, IsForeignKeyViolation(pgxErr))
	assert.True(t, IsForeignKeyViolation(pqErr))
	assert.Equal(t, "", SQLState(errors.New("plain")))
	assert.False(t, IsUniqueViolation(nil))
}
