package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"movie-booking/internal/data/entity"
	"movie-booking/internal/data/repository"
	"movie-booking/internal/dto/request"
	"movie-booking/internal/dto/response"

	"go.uber.org/zap"
)

type ShowtimeService interface {
	GetAllShowtimes(ctx context.Context) ([]response.ShowtimeResponse, error)
	GetShowtime(ctx context.Context, id int64) (*response.ShowtimeResponse, error)
	AddShowtime(ctx context.Context, req *request.ShowtimeRequest) (*response.ShowtimeResponse, error)
	UpdateShowtime(ctx context.Context, id int64, req *request.ShowtimeRequest) (*response.ShowtimeResponse, error)
	DeleteShowtime(ctx context.Context, id int64) error
}

type showtimeService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewShowtimeService(
	repo *repository.Repository,
	log *zap.Logger,
) ShowtimeService {
	return &showtimeService{
		repo: repo,
		log:  log.With(zap.String("service", "showtime")),
	}
}

func findShowtime(ctx context.Context, repo *repository.Repository, id int64) (*entity.Showtime, error) {
	showtime, err := repo.Showtime.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get showtime by id: %w", err)
	}
	if showtime == nil {
		return nil, newError(ErrNotFound, "Showtime not found: %d", id)
	}
	return showtime, nil
}

func findMovie(ctx context.Context, repo *repository.Repository, id int64) (*entity.Movie, error) {
	movie, err := repo.Movie.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get movie by id: %w", err)
	}
	if movie == nil {
		return nil, newError(ErrNotFound, "Movie not found: %d", id)
	}
	return movie, nil
}

// resolveTheater returns the theater with the given name, creating it with
// the default capacity when it does not exist yet.
func (s *showtimeService) resolveTheater(ctx context.Context, repo *repository.Repository, name string) (*entity.Theater, error) {
	theater, created, err := repo.Theater.FindOrCreate(ctx, name, entity.DefaultTheaterCapacity)
	if err != nil {
		return nil, fmt.Errorf("resolve theater: %w", err)
	}
	if created {
		s.log.Info("Theater auto-created for showtime",
			zap.Int64("theater_id", theater.ID),
			zap.String("name", theater.Name),
			zap.Int("capacity", theater.Capacity),
		)
	}
	return theater, nil
}

func validateInterval(start, end time.Time) error {
	if !start.Before(end) {
		return newError(ErrInvalidInterval, "Showtime startTime must be before endTime")
	}
	return nil
}

// checkOverlap locks the theater for the rest of the transaction and fails if
// any showtime other than exclude intersects [start, end].
func (s *showtimeService) checkOverlap(ctx context.Context, repo *repository.Repository, theaterID, exclude int64, start, end time.Time, msg string) error {
	if err := repo.Showtime.LockTheater(ctx, theaterID); err != nil {
		return fmt.Errorf("lock theater: %w", err)
	}

	overlapping, err := repo.Showtime.FindOverlapping(ctx, theaterID, start, end)
	if err != nil {
		return fmt.Errorf("find overlapping showtimes: %w", err)
	}

	for _, other := range overlapping {
		if other.ID == exclude {
			continue
		}
		s.log.Warn("Showtime overlap rejected",
			zap.Int64("theater_id", theaterID),
			zap.Int64("conflicting_showtime_id", other.ID),
			zap.Time("start_time", start),
			zap.Time("end_time", end),
		)
		return newError(ErrOverlap, "%s", msg)
	}
	return nil
}

func (s *showtimeService) GetAllShowtimes(ctx context.Context) ([]response.ShowtimeResponse, error) {
	showtimes, err := s.repo.Showtime.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to get showtimes", zap.Error(err))
		return nil, fmt.Errorf("get showtimes: %w", err)
	}

	theaters, err := s.repo.Theater.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to get theaters", zap.Error(err))
		return nil, fmt.Errorf("get theaters: %w", err)
	}

	names := make(map[int64]string, len(theaters))
	for _, theater := range theaters {
		names[theater.ID] = theater.Name
	}

	out := make([]response.ShowtimeResponse, len(showtimes))
	for i, showtime := range showtimes {
		out[i] = response.ShowtimeToResponse(showtime, names[showtime.TheaterID])
	}
	return out, nil
}

func (s *showtimeService) GetShowtime(ctx context.Context, id int64) (*response.ShowtimeResponse, error) {
	showtime, err := findShowtime(ctx, s.repo, id)
	if err != nil {
		return nil, err
	}

	theater, err := findTheater(ctx, s.repo, showtime.TheaterID)
	if err != nil {
		return nil, err
	}

	resp := response.ShowtimeToResponse(showtime, theater.Name)
	return &resp, nil
}

func (s *showtimeService) AddShowtime(ctx context.Context, req *request.ShowtimeRequest) (*response.ShowtimeResponse, error) {
	name, err := normalizeTheaterName(req.Theater)
	if err != nil {
		return nil, err
	}
	start, end := req.StartTime.Time, req.EndTime.Time

	var (
		showtime *entity.Showtime
		theater  *entity.Theater
	)
	err = s.repo.Atomic(ctx, func(repo *repository.Repository) error {
		movie, err := findMovie(ctx, repo, *req.MovieID)
		if err != nil {
			return err
		}

		theater, err = s.resolveTheater(ctx, repo, name)
		if err != nil {
			return err
		}

		if err := validateInterval(start, end); err != nil {
			return err
		}

		if err := s.checkOverlap(ctx, repo, theater.ID, 0, start, end,
			"This showtime overlaps with an existing one in the same theater."); err != nil {
			return err
		}

		now := time.Now()
		showtime = &entity.Showtime{
			Base: entity.Base{
				CreatedAt: now,
				UpdatedAt: now,
			},
			MovieID:   movie.ID,
			TheaterID: theater.ID,
			Price:     *req.Price,
			StartTime: start,
			EndTime:   end,
		}

		if err := repo.Showtime.Create(ctx, showtime); err != nil {
			if errors.Is(err, repository.ErrConstraintViolation) {
				return newError(ErrUniqueConstraint, "Failed to create showtime for movie: %s", movie.Title).withCause(err)
			}
			return fmt.Errorf("create showtime: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Showtime created",
		zap.Int64("showtime_id", showtime.ID),
		zap.Int64("movie_id", showtime.MovieID),
		zap.Int64("theater_id", showtime.TheaterID),
		zap.Time("start_time", showtime.StartTime),
		zap.Time("end_time", showtime.EndTime),
	)

	resp := response.ShowtimeToResponse(showtime, theater.Name)
	return &resp, nil
}

func (s *showtimeService) UpdateShowtime(ctx context.Context, id int64, req *request.ShowtimeRequest) (*response.ShowtimeResponse, error) {
	name, err := normalizeTheaterName(req.Theater)
	if err != nil {
		return nil, err
	}
	start, end := req.StartTime.Time, req.EndTime.Time

	var (
		showtime *entity.Showtime
		theater  *entity.Theater
	)
	err = s.repo.Atomic(ctx, func(repo *repository.Repository) error {
		showtime, err = findShowtime(ctx, repo, id)
		if err != nil {
			return err
		}

		theater, err = s.resolveTheater(ctx, repo, name)
		if err != nil {
			return err
		}

		movie, err := findMovie(ctx, repo, *req.MovieID)
		if err != nil {
			return err
		}

		if err := validateInterval(start, end); err != nil {
			return err
		}

		if err := s.checkOverlap(ctx, repo, theater.ID, showtime.ID, start, end,
			"Updated showtime overlaps with an existing one in the same theater."); err != nil {
			return err
		}

		showtime.MovieID = movie.ID
		showtime.TheaterID = theater.ID
		showtime.Price = *req.Price
		showtime.StartTime = start
		showtime.EndTime = end
		showtime.UpdatedAt = time.Now()

		if err := repo.Showtime.Update(ctx, showtime); err != nil {
			if errors.Is(err, repository.ErrConstraintViolation) {
				return newError(ErrUniqueConstraint, "Data integrity violation while updating showtime: %d", id).withCause(err)
			}
			return fmt.Errorf("update showtime: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Showtime updated",
		zap.Int64("showtime_id", showtime.ID),
		zap.Int64("movie_id", showtime.MovieID),
		zap.Int64("theater_id", showtime.TheaterID),
	)

	resp := response.ShowtimeToResponse(showtime, theater.Name)
	return &resp, nil
}

func hasBookings(id int64) *Error {
	return newError(ErrInUse,
		"Cannot delete showtime %d because it has bookings associated. Please delete the bookings first.", id)
}

func (s *showtimeService) DeleteShowtime(ctx context.Context, id int64) error {
	err := s.repo.Atomic(ctx, func(repo *repository.Repository) error {
		if _, err := findShowtime(ctx, repo, id); err != nil {
			return err
		}

		booked, err := repo.Booking.ExistsByShowtime(ctx, id)
		if err != nil {
			return fmt.Errorf("check bookings of showtime: %w", err)
		}
		if booked {
			return hasBookings(id)
		}

		if err := repo.Showtime.Delete(ctx, id); err != nil {
			if errors.Is(err, repository.ErrReferenced) {
				return hasBookings(id).withCause(err)
			}
			return fmt.Errorf("delete showtime: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInUse) {
			s.log.Warn("Showtime has bookings", zap.Int64("showtime_id", id))
		}
		return err
	}

	s.log.Info("Showtime deleted", zap.Int64("showtime_id", id))

	return nil
}
