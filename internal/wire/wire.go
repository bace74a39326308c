package wire

import (
	"movie-booking/internal/adaptor"
	"movie-booking/internal/data/repository"
	"movie-booking/internal/event"
	"movie-booking/internal/usecase"
	"movie-booking/pkg/middleware"
	"movie-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type App struct {
	Router *chi.Mux
}

// Wiring builds services, handlers and the router. limiter may be nil, in
// which case requests are not rate limited.
func Wiring(
	repo *repository.Repository,
	publisher event.Publisher,
	limiter middleware.Limiter,
	config *utils.Config,
	logger *zap.Logger,
) *App {
	service := usecase.NewService(repo, publisher, logger)
	handler := adaptor.NewHandler(service, repo, config.App.ErrorStatusMode, logger)

	router := setupRouter(handler, limiter, logger)

	return &App{
		Router: router,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	limiter middleware.Limiter,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	r.Get("/health", handler.Health.Health)

	r.Group(func(r chi.Router) {
		if limiter != nil {
			r.Use(middleware.RateLimit(limiter, logger))
		}

		wireMovie(r, handler.Movie)
		wireTheater(r, handler.Theater)
		wireShowtime(r, handler.Showtime)
		wireBooking(r, handler.Booking)
	})

	return r
}
