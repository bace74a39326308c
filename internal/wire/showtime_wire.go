package wire

import (
	"movie-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireShowtime(r chi.Router, showtimeHandler *adaptor.ShowtimeHandler) {
	r.Route("/showtimes", func(r chi.Router) {
		r.Get("/all", showtimeHandler.GetAllShowtimes)
		r.Post("/", showtimeHandler.AddShowtime)
		r.Post("/update/{showtimeId}", showtimeHandler.UpdateShowtime)
		r.Get("/{showtimeId}", showtimeHandler.GetShowtime)
		r.Delete("/{showtimeId}", showtimeHandler.DeleteShowtime)
	})
}
