package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrConstraintViolation is returned by Create/Update when the store rejects
// a row because of a uniqueness constraint.
var ErrConstraintViolation = errors.New("constraint violation")

// ErrReferenced is returned by Delete when another row still points at the
// one being removed.
var ErrReferenced = errors.New("row is still referenced")

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

// classify wraps unique violations in ErrConstraintViolation and foreign key
// violations in ErrReferenced so callers can branch with errors.Is.
func classify(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case uniqueViolation:
		return fmt.Errorf("%w: %w", ErrConstraintViolation, err)
	case foreignKeyViolation:
		return fmt.Errorf("%w: %w", ErrReferenced, err)
	}
	return err
}
