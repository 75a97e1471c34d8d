package database_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/skarbonka/internal/database"
)

func TestIsUniqueViolation(t *testing.T) {
	wrapped := fmt.Errorf("creating category: %w", &pgconn.PgError{Code: "23505"})

	assert.True(t, database.IsUniqueViolation(wrapped))
	assert.False(t, database.IsForeignKeyViolation(wrapped))
	assert.False(t, database.IsUniqueViolation(errors.New("23505")))
	assert.False(t, database.IsUniqueViolation(nil))
}

func TestIsForeignKeyViolation(t *testing.T) {
	err := &pgconn.PgError{Code: "23503"}

	assert.True(t, database.IsForeignKeyViolation(err))
	assert.False(t, database.IsUniqueViolation(err))
}

func TestIsCheckViolation(t *testing.T) {
	err := fmt.Errorf("adjusting goal: %w", &pgconn.PgError{Code: "23514", ConstraintName: "goals_current_amount_check"})

	assert.True(t, database.IsCheckViolation(err))
	assert.False(t, database.IsForeignKeyViolation(err))
}
