package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/merchbydz/backoffice/internal/domain"
)

// Códigos SQLSTATE de violación de restricciones.
const (
	uniqueViolation  = "23505"
	checkViolation   = "23514"
	notNullViolation = "23502"
)

// constraintError traduce una violación de restricción a domain.ErrInvalidInput;
// el resto de errores se devuelve tal cual.
func constraintError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case uniqueViolation, checkViolation, notNullViolation:
		return fmt.Errorf("%w: %s (%s)", domain.ErrInvalidInput, pgErr.Message, pgErr.ConstraintName)
	}
	return err
}
