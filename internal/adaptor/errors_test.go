package adaptor

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"movie-booking/internal/usecase"
	"movie-booking/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestStatusFor(t *testing.T) {
	legacy := errorResponder{mode: utils.ErrorStatusLegacy, log: zap.NewNop()}
	conflict := errorResponder{mode: utils.ErrorStatusConflict, log: zap.NewNop()}

	cases := []struct {
		err              error
		legacy, conflict int
	}{
		{usecase.ErrNotFound, http.StatusNotFound, http.StatusNotFound},
		{usecase.ErrValidation, http.StatusBadRequest, http.StatusBadRequest},
		{usecase.ErrEmptyName, http.StatusBadRequest, http.StatusBadRequest},
		{usecase.ErrUniqueConstraint, http.StatusInternalServerError, http.StatusConflict},
		{usecase.ErrInvalidSeat, http.StatusInternalServerError, http.StatusConflict},
		{usecase.ErrOverlap, http.StatusInternalServerError, http.StatusConflict},
		{&usecase.InUseError{Entity: "movie", IDs: []int64{1}}, http.StatusInternalServerError, http.StatusConflict},
		{usecase.ErrInvalidInterval, http.StatusInternalServerError, http.StatusBadRequest},
		{errors.New("disk on fire"), 0, 0},
	}

	for _, tc := range cases {
		wrapped := fmt.Errorf("wrapped: %w", tc.err)
		assert.Equal(t, tc.legacy, legacy.statusFor(wrapped), "legacy %v", tc.err)
		assert.Equal(t, tc.conflict, conflict.statusFor(wrapped), "conflict %v", tc.err)
	}
}

func TestHandleServiceErrorHidesInternalErrors(t *testing.T) {
	responder := errorResponder{mode: utils.ErrorStatusLegacy, log: zap.NewNop()}

	rec := httptest.NewRecorder()
	responder.handleServiceError(rec, errors.New("pq: password authentication failed"), "get movies")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var body utils.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Status)
	assert.Equal(t, "Internal server error", body.Message)
}

func TestHandleServiceErrorKeepsDomainMessage(t *testing.T) {
	responder := errorResponder{mode: utils.ErrorStatusLegacy, log: zap.NewNop()}

	rec := httptest.NewRecorder()
	err := &usecase.InUseError{Entity: "theater", IDs: []int64{3, 4}}
	responder.handleServiceError(rec, err, "delete theater")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var body utils.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Cannot delete theater because it is used by showtimes with IDs: 3, 4", body.Message)
}
