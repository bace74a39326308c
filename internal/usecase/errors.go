package usecase

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Error kinds returned by the services. Match them with errors.Is.
var (
	ErrNotFound         = errors.New("not found")
	ErrUniqueConstraint = errors.New("unique constraint violation")
	ErrInvalidSeat      = errors.New("invalid seat")
	ErrOverlap          = errors.New("overlapping showtime")
	ErrInvalidInterval  = errors.New("invalid interval")
	ErrInUse            = errors.New("in use")
	ErrEmptyName        = errors.New("empty name")
	ErrValidation       = errors.New("validation failed")
)

// Error is a domain failure with a caller-facing message. The message is
// safe to return to clients; cause is only kept for logging and errors.Is.
type Error struct {
	kind  error
	msg   string
	cause error
}

func newError(kind error, format string, args ...any) *Error {
	return &Error{kind: kind, msg: fmt.Sprintf(format, args...)}
}

func (e *Error) withCause(err error) *Error {
	e.cause = err
	return e
}

func (e *Error) Error() string {
	return e.msg
}

func (e *Error) Unwrap() []error {
	if e.cause == nil {
		return []error{e.kind}
	}
	return []error{e.kind, e.cause}
}

// InUseError reports a delete refused because showtimes still reference the
// target. IDs is ascending.
type InUseError struct {
	Entity string
	IDs    []int64
}

func (e *InUseError) Error() string {
	ids := make([]string, len(e.IDs))
	for i, id := range e.IDs {
		ids[i] = strconv.FormatInt(id, 10)
	}
	return fmt.Sprintf("Cannot delete %s because it is used by showtimes with IDs: %s",
		e.Entity, strings.Join(ids, ", "))
}

func (e *InUseError) Unwrap() error {
	return ErrInUse
}
