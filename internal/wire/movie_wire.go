package wire

import (
	"movie-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireMovie(r chi.Router, movieHandler *adaptor.MovieHandler) {
	r.Route("/movies", func(r chi.Router) {
		r.Get("/all", movieHandler.GetAllMovies)
		r.Post("/", movieHandler.AddMovie)
		r.Post("/update/{movieTitle}", movieHandler.UpdateMovie)
		r.Get("/{movieTitle}", movieHandler.GetMovie)
		r.Delete("/{movieTitle}", movieHandler.DeleteMovie)
	})
}
