package repositories

import (
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	duplicate := &pgconn.PgError{Code: "23505", ConstraintName: "applications_student_id_drive_id_key"}
	assert.True(t, isUniqueViolation(duplicate))
	assert.True(t, isUniqueViolation(fmt.Errorf("error creating application: %w", duplicate)))

	foreignKey := &pgconn.PgError{Code: "23503"}
	assert.False(t, isUniqueViolation(foreignKey))
	assert.False(t, isUniqueViolation(fmt.Errorf("connection reset")))
	assert.False(t, isUniqueViolation(nil))
}
