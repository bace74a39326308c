package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	unique := &pgconn.PgError{Code: "23505", ConstraintName: "uk_showtime_seat"}
	err := classify(fmt.Errorf("exec: %w", unique))
	assert.ErrorIs(t, err, ErrConstraintViolation)

	var pgErr *pgconn.PgError
	assert.True(t, errors.As(err, &pgErr))
	assert.Equal(t, "uk_showtime_seat", pgErr.ConstraintName)

	foreignKey := &pgconn.PgError{Code: "23503", ConstraintName: "fk_bookings_showtime"}
	err = classify(fmt.Errorf("exec: %w", foreignKey))
	assert.ErrorIs(t, err, ErrReferenced)
	assert.NotErrorIs(t, err, ErrConstraintViolation)

	other := &pgconn.PgError{Code: "23514"}
	assert.Equal(t, error(other), classify(other))

	plain := errors.New("connection reset")
	assert.Equal(t, plain, classify(plain))
}
