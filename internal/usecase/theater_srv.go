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
	"movie-booking/pkg/utils"

	"go.uber.org/zap"
)

type TheaterService interface {
	GetAllTheaters(ctx context.Context) ([]response.TheaterResponse, error)
	GetTheater(ctx context.Context, id int64) (*response.TheaterResponse, error)
	GetTheaterByName(ctx context.Context, name string) (*response.TheaterResponse, error)
	AddTheater(ctx context.Context, req *request.TheaterRequest) (*response.TheaterResponse, error)
	UpdateTheater(ctx context.Context, id int64, req *request.TheaterRequest) (*response.TheaterResponse, error)
	DeleteTheater(ctx context.Context, id int64) error
}

type theaterService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewTheaterService(
	repo *repository.Repository,
	log *zap.Logger,
) TheaterService {
	return &theaterService{
		repo: repo,
		log:  log.With(zap.String("service", "theater")),
	}
}

func normalizeTheaterName(name string) (string, error) {
	normalized := utils.NormalizeString(name)
	if normalized == "" {
		return "", newError(ErrEmptyName, "Theater name must not be empty")
	}
	return normalized, nil
}

func findTheater(ctx context.Context, repo *repository.Repository, id int64) (*entity.Theater, error) {
	theater, err := repo.Theater.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get theater by id: %w", err)
	}
	if theater == nil {
		return nil, newError(ErrNotFound, "Theater not found: %d", id)
	}
	return theater, nil
}

func (s *theaterService) GetAllTheaters(ctx context.Context) ([]response.TheaterResponse, error) {
	theaters, err := s.repo.Theater.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to get theaters", zap.Error(err))
		return nil, fmt.Errorf("get theaters: %w", err)
	}

	return response.TheatersToResponse(theaters), nil
}

func (s *theaterService) GetTheater(ctx context.Context, id int64) (*response.TheaterResponse, error) {
	theater, err := findTheater(ctx, s.repo, id)
	if err != nil {
		return nil, err
	}

	resp := response.TheaterToResponse(theater)
	return &resp, nil
}

func (s *theaterService) GetTheaterByName(ctx context.Context, name string) (*response.TheaterResponse, error) {
	normalized, err := normalizeTheaterName(name)
	if err != nil {
		return nil, err
	}

	theater, err := s.repo.Theater.FindByName(ctx, normalized)
	if err != nil {
		return nil, fmt.Errorf("get theater by name: %w", err)
	}
	if theater == nil {
		return nil, newError(ErrNotFound, "Theater not found: %s", normalized)
	}

	resp := response.TheaterToResponse(theater)
	return &resp, nil
}

func (s *theaterService) AddTheater(ctx context.Context, req *request.TheaterRequest) (*response.TheaterResponse, error) {
	name, err := normalizeTheaterName(req.Name)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	theater := &entity.Theater{
		Base: entity.Base{
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:     name,
		Capacity: req.Capacity,
	}

	if err := s.repo.Theater.Create(ctx, theater); err != nil {
		if errors.Is(err, repository.ErrConstraintViolation) {
			s.log.Warn("Duplicate theater name", zap.String("name", name))
			return nil, newError(ErrUniqueConstraint, "Theater name must be unique. %q already exists", name).withCause(err)
		}
		return nil, fmt.Errorf("create theater: %w", err)
	}

	s.log.Info("Theater created",
		zap.Int64("theater_id", theater.ID),
		zap.String("name", theater.Name),
		zap.Int("capacity", theater.Capacity),
	)

	resp := response.TheaterToResponse(theater)
	return &resp, nil
}

func (s *theaterService) UpdateTheater(ctx context.Context, id int64, req *request.TheaterRequest) (*response.TheaterResponse, error) {
	name, err := normalizeTheaterName(req.Name)
	if err != nil {
		return nil, err
	}

	theater, err := findTheater(ctx, s.repo, id)
	if err != nil {
		return nil, err
	}

	theater.Name = name
	theater.Capacity = req.Capacity
	theater.UpdatedAt = time.Now()

	if err := s.repo.Theater.Update(ctx, theater); err != nil {
		if errors.Is(err, repository.ErrConstraintViolation) {
			s.log.Warn("Theater name collision on update",
				zap.Int64("theater_id", id),
				zap.String("name", name),
			)
			return nil, newError(ErrUniqueConstraint, "Theater name must be unique. %q already exists", name).withCause(err)
		}
		return nil, fmt.Errorf("update theater: %w", err)
	}

	s.log.Info("Theater updated",
		zap.Int64("theater_id", theater.ID),
		zap.String("name", theater.Name),
		zap.Int("capacity", theater.Capacity),
	)

	resp := response.TheaterToResponse(theater)
	return &resp, nil
}

func (s *theaterService) DeleteTheater(ctx context.Context, id int64) error {
	err := s.repo.Atomic(ctx, func(repo *repository.Repository) error {
		if _, err := findTheater(ctx, repo, id); err != nil {
			return err
		}

		showtimes, err := repo.Showtime.FindByTheaterID(ctx, id)
		if err != nil {
			return fmt.Errorf("get showtimes of theater: %w", err)
		}
		if len(showtimes) > 0 {
			return &InUseError{Entity: "theater", IDs: showtimeIDs(showtimes)}
		}

		if err := repo.Theater.Delete(ctx, id); err != nil {
			return fmt.Errorf("delete theater: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrReferenced) {
			err = s.stillReferenced(ctx, id, err)
		}
		var inUse *InUseError
		if errors.As(err, &inUse) {
			s.log.Warn("Theater still in use",
				zap.Int64("theater_id", id),
				zap.Int64s("showtime_ids", inUse.IDs),
			)
		}
		return err
	}

	s.log.Info("Theater deleted", zap.Int64("theater_id", id))

	return nil
}

func (s *theaterService) stillReferenced(ctx context.Context, theaterID int64, cause error) error {
	showtimes, err := s.repo.Showtime.FindByTheaterID(ctx, theaterID)
	if err != nil || len(showtimes) == 0 {
		return newError(ErrInUse, "Cannot delete theater %d because it is still used by showtimes", theaterID).withCause(cause)
	}
	return &InUseError{Entity: "theater", IDs: showtimeIDs(showtimes)}
}
