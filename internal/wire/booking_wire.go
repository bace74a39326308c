package wire

import (
	"movie-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireBooking(r chi.Router, bookingHandler *adaptor.BookingHandler) {
	r.Route("/bookings", func(r chi.Router) {
		r.Post("/", bookingHandler.BookTicket)
		r.Get("/{bookingId}", bookingHandler.GetBooking)
	})
}
