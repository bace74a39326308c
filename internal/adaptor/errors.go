package adaptor

import (
	"errors"
	"net/http"

	"movie-booking/internal/usecase"
	"movie-booking/pkg/utils"

	"go.uber.org/zap"
)

// errorResponder maps service errors to responses. In legacy mode domain
// conflicts answer 500 with their message; in conflict mode they answer 409.
type errorResponder struct {
	mode string
	log  *zap.Logger
}

// domainConflicts are the error kinds a client can fix by changing its input.
var domainConflicts = []error{
	usecase.ErrUniqueConstraint,
	usecase.ErrInvalidSeat,
	usecase.ErrOverlap,
	usecase.ErrInUse,
	usecase.ErrInvalidInterval,
}

func (e errorResponder) statusFor(err error) int {
	switch {
	case errors.Is(err, usecase.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, usecase.ErrValidation), errors.Is(err, usecase.ErrEmptyName):
		return http.StatusBadRequest
	}

	for _, kind := range domainConflicts {
		if !errors.Is(err, kind) {
			continue
		}
		if e.mode != utils.ErrorStatusConflict {
			return http.StatusInternalServerError
		}
		if kind == usecase.ErrInvalidInterval {
			return http.StatusBadRequest
		}
		return http.StatusConflict
	}

	return 0
}

func (e errorResponder) handleServiceError(w http.ResponseWriter, err error, operation string) {
	status := e.statusFor(err)
	if status == 0 {
		e.log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
		return
	}

	e.log.Warn(operation+" rejected",
		zap.Error(err),
		zap.String("operation", operation),
		zap.Int("status", status))
	utils.ResponseError(w, status, err.Error(), nil)
}
