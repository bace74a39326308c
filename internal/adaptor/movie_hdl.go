package adaptor

import (
	"net/http"

	"movie-booking/internal/dto/request"
	"movie-booking/internal/usecase"
	"movie-booking/pkg/utils"

	"go.uber.org/zap"
)

type MovieHandler struct {
	errorResponder
	service usecase.MovieService
}

func NewMovieHandler(service usecase.MovieService, errorStatusMode string, log *zap.Logger) *MovieHandler {
	log = log.With(zap.String("handler", "movie"))
	return &MovieHandler{
		errorResponder: errorResponder{mode: errorStatusMode, log: log},
		service:        service,
	}
}

// GetAllMovies handles GET /movies/all
func (h *MovieHandler) GetAllMovies(w http.ResponseWriter, r *http.Request) {
	movies, err := h.service.GetAllMovies(r.Context())
	if err != nil {
		h.handleServiceError(w, err, "get movies")
		return
	}

	utils.ResponseSuccess(w, "success", movies)
}

// GetMovie handles GET /movies/{movieTitle}
func (h *MovieHandler) GetMovie(w http.ResponseWriter, r *http.Request) {
	movie, err := h.service.GetMovieByTitle(r.Context(), pathParam(r, "movieTitle"))
	if err != nil {
		h.handleServiceError(w, err, "get movie")
		return
	}

	utils.ResponseSuccess(w, "success", movie)
}

// AddMovie handles POST /movies
func (h *MovieHandler) AddMovie(w http.ResponseWriter, r *http.Request) {
	var req request.MovieRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	movie, err := h.service.AddMovie(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "add movie")
		return
	}

	utils.ResponseSuccess(w, "Movie created successfully", movie)
}

// UpdateMovie handles POST /movies/update/{movieTitle}
func (h *MovieHandler) UpdateMovie(w http.ResponseWriter, r *http.Request) {
	var req request.MovieRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	movie, err := h.service.UpdateMovie(r.Context(), pathParam(r, "movieTitle"), &req)
	if err != nil {
		h.handleServiceError(w, err, "update movie")
		return
	}

	utils.ResponseSuccess(w, "Movie updated successfully", movie)
}

// DeleteMovie handles DELETE /movies/{movieTitle}
func (h *MovieHandler) DeleteMovie(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteMovie(r.Context(), pathParam(r, "movieTitle")); err != nil {
		h.handleServiceError(w, err, "delete movie")
		return
	}

	utils.ResponseSuccess(w, "Movie deleted successfully", nil)
}
