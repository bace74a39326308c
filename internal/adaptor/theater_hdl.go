package adaptor

import (
	"net/http"

	"movie-booking/internal/dto/request"
	"movie-booking/internal/usecase"
	"movie-booking/pkg/utils"

	"go.uber.org/zap"
)

type TheaterHandler struct {
	errorResponder
	service usecase.TheaterService
}

func NewTheaterHandler(service usecase.TheaterService, errorStatusMode string, log *zap.Logger) *TheaterHandler {
	log = log.With(zap.String("handler", "theater"))
	return &TheaterHandler{
		errorResponder: errorResponder{mode: errorStatusMode, log: log},
		service:        service,
	}
}

// GetAllTheaters handles GET /theaters/all
func (h *TheaterHandler) GetAllTheaters(w http.ResponseWriter, r *http.Request) {
	theaters, err := h.service.GetAllTheaters(r.Context())
	if err != nil {
		h.handleServiceError(w, err, "get theaters")
		return
	}

	utils.ResponseSuccess(w, "success", theaters)
}

// GetTheater handles GET /theaters/{id}
func (h *TheaterHandler) GetTheater(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	theater, err := h.service.GetTheater(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err, "get theater")
		return
	}

	utils.ResponseSuccess(w, "success", theater)
}

// GetTheaterByName handles GET /theaters/name/{name}
func (h *TheaterHandler) GetTheaterByName(w http.ResponseWriter, r *http.Request) {
	theater, err := h.service.GetTheaterByName(r.Context(), pathParam(r, "name"))
	if err != nil {
		h.handleServiceError(w, err, "get theater by name")
		return
	}

	utils.ResponseSuccess(w, "success", theater)
}

// AddTheater handles POST /theaters
func (h *TheaterHandler) AddTheater(w http.ResponseWriter, r *http.Request) {
	var req request.TheaterRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	theater, err := h.service.AddTheater(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "add theater")
		return
	}

	utils.ResponseSuccess(w, "Theater created successfully", theater)
}

// UpdateTheater handles POST /theaters/update/{id}
func (h *TheaterHandler) UpdateTheater(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req request.TheaterRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	theater, err := h.service.UpdateTheater(r.Context(), id, &req)
	if err != nil {
		h.handleServiceError(w, err, "update theater")
		return
	}

	utils.ResponseSuccess(w, "Theater updated successfully", theater)
}

// DeleteTheater handles DELETE /theaters/{id}
func (h *TheaterHandler) DeleteTheater(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteTheater(r.Context(), id); err != nil {
		h.handleServiceError(w, err, "delete theater")
		return
	}

	utils.ResponseSuccess(w, "Theater deleted successfully", nil)
}
