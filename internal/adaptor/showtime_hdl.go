package adaptor

import (
	"net/http"

	"movie-booking/internal/dto/request"
	"movie-booking/internal/usecase"
	"movie-booking/pkg/utils"

	"go.uber.org/zap"
)

type ShowtimeHandler struct {
	errorResponder
	service usecase.ShowtimeService
}

func NewShowtimeHandler(service usecase.ShowtimeService, errorStatusMode string, log *zap.Logger) *ShowtimeHandler {
	log = log.With(zap.String("handler", "showtime"))
	return &ShowtimeHandler{
		errorResponder: errorResponder{mode: errorStatusMode, log: log},
		service:        service,
	}
}

// GetAllShowtimes handles GET /showtimes/all
func (h *ShowtimeHandler) GetAllShowtimes(w http.ResponseWriter, r *http.Request) {
	showtimes, err := h.service.GetAllShowtimes(r.Context())
	if err != nil {
		h.handleServiceError(w, err, "get showtimes")
		return
	}

	utils.ResponseSuccess(w, "success", showtimes)
}

// GetShowtime handles GET /showtimes/{showtimeId}
func (h *ShowtimeHandler) GetShowtime(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "showtimeId")
	if !ok {
		return
	}

	showtime, err := h.service.GetShowtime(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err, "get showtime")
		return
	}

	utils.ResponseSuccess(w, "success", showtime)
}

// AddShowtime handles POST /showtimes
func (h *ShowtimeHandler) AddShowtime(w http.ResponseWriter, r *http.Request) {
	var req request.ShowtimeRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	showtime, err := h.service.AddShowtime(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "add showtime")
		return
	}

	utils.ResponseSuccess(w, "Showtime created successfully", showtime)
}

// UpdateShowtime handles POST /showtimes/update/{showtimeId}
func (h *ShowtimeHandler) UpdateShowtime(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "showtimeId")
	if !ok {
		return
	}

	var req request.ShowtimeRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	showtime, err := h.service.UpdateShowtime(r.Context(), id, &req)
	if err != nil {
		h.handleServiceError(w, err, "update showtime")
		return
	}

	utils.ResponseSuccess(w, "Showtime updated successfully", showtime)
}

// DeleteShowtime handles DELETE /showtimes/{showtimeId}
func (h *ShowtimeHandler) DeleteShowtime(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "showtimeId")
	if !ok {
		return
	}

	if err := h.service.DeleteShowtime(r.Context(), id); err != nil {
		h.handleServiceError(w, err, "delete showtime")
		return
	}

	utils.ResponseSuccess(w, "Showtime deleted successfully", nil)
}
