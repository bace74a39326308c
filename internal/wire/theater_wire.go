package wire

import (
	"movie-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireTheater(r chi.Router, theaterHandler *adaptor.TheaterHandler) {
	r.Route("/theaters", func(r chi.Router) {
		r.Get("/all", theaterHandler.GetAllTheaters)
		r.Get("/name/{name}", theaterHandler.GetTheaterByName)
		r.Post("/", theaterHandler.AddTheater)
		r.Post("/update/{id}", theaterHandler.UpdateTheater)
		r.Get("/{id}", theaterHandler.GetTheater)
		r.Delete("/{id}", theaterHandler.DeleteTheater)
	})
}
