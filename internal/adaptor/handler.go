package adaptor

import (
	"encoding/json"
	"net/http"
	"net/url"

	"movie-booking/internal/data/repository"
	"movie-booking/internal/usecase"
	"movie-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Handler struct {
	Movie    *MovieHandler
	Theater  *TheaterHandler
	Showtime *ShowtimeHandler
	Booking  *BookingHandler
	Health   *HealthHandler
}

func NewHandler(service *usecase.Service, repo *repository.Repository, errorStatusMode string, log *zap.Logger) *Handler {
	return &Handler{
		Movie:    NewMovieHandler(service.Movie, errorStatusMode, log),
		Theater:  NewTheaterHandler(service.Theater, errorStatusMode, log),
		Showtime: NewShowtimeHandler(service.Showtime, errorStatusMode, log),
		Booking:  NewBookingHandler(service.Booking, errorStatusMode, log),
		Health:   NewHealthHandler(repo.Ping, log),
	}
}

// decodeAndValidate writes a 400 and returns false when the body is not valid
// JSON for dst or fails its validation tags.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return false
	}

	if validationErrors := utils.ValidateStruct(dst); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed: "+utils.FormatValidationErrors(validationErrors), validationErrors)
		return false
	}

	return true
}

// pathParam returns the decoded value of a chi URL parameter. chi matches on
// r.URL.RawPath when it is set (an escaped "/" in the path), and only then is
// the parameter still escaped.
func pathParam(r *http.Request, name string) string {
	value := chi.URLParam(r, name)
	if r.URL.RawPath == "" {
		return value
	}
	if unescaped, err := url.PathUnescape(value); err == nil {
		return unescaped
	}
	return value
}

// pathID parses a positive numeric URL parameter, writing a 400 on failure.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := utils.ParseID(chi.URLParam(r, name))
	if err != nil {
		utils.ResponseBadRequest(w, err.Error(), nil)
		return 0, false
	}
	return id, true
}
