package usecase

import (
	"movie-booking/internal/data/repository"
	"movie-booking/internal/event"

	"go.uber.org/zap"
)

type Service struct {
	Movie    MovieService
	Theater  TheaterService
	Showtime ShowtimeService
	Booking  BookingService
}

func NewService(repo *repository.Repository, publisher event.Publisher, log *zap.Logger) *Service {
	return &Service{
		Movie:    NewMovieService(repo, log),
		Theater:  NewTheaterService(repo, log),
		Showtime: NewShowtimeService(repo, log),
		Booking:  NewBookingService(repo, publisher, log),
	}
}
