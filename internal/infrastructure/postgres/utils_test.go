package postgres

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/merchbydz/backoffice/internal/domain"
)

func TestConstraintError(t *testing.T) {
	check := &pgconn.PgError{Code: "23514", Message: "new row violates check constraint", ConstraintName: "orders_channel_check"}
	err := constraintError(check)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "orders_channel_check")

	other := &pgconn.PgError{Code: "08006"}
	assert.Same(t, other, constraintError(other))

	plain := errors.New("boom")
	assert.Equal(t, plain, constraintError(plain))
}
