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

type MovieService interface {
	GetAllMovies(ctx context.Context) ([]response.MovieResponse, error)
	GetMovieByTitle(ctx context.Context, title string) (*response.MovieResponse, error)
	AddMovie(ctx context.Context, req *request.MovieRequest) (*response.MovieResponse, error)
	UpdateMovie(ctx context.Context, title string, req *request.MovieRequest) (*response.MovieResponse, error)
	DeleteMovie(ctx context.Context, title string) error
}

type movieService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewMovieService(
	repo *repository.Repository,
	log *zap.Logger,
) MovieService {
	return &movieService{
		repo: repo,
		log:  log.With(zap.String("service", "movie")),
	}
}

func normalizeTitle(title string) (string, error) {
	normalized := utils.NormalizeString(title)
	if normalized == "" {
		return "", newError(ErrEmptyName, "Movie title must not be empty")
	}
	return normalized, nil
}

func (s *movieService) GetAllMovies(ctx context.Context) ([]response.MovieResponse, error) {
	movies, err := s.repo.Movie.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to get movies", zap.Error(err))
		return nil, fmt.Errorf("get movies: %w", err)
	}

	s.log.Debug("Movies retrieved", zap.Int("count", len(movies)))

	return response.MoviesToResponse(movies), nil
}

func (s *movieService) GetMovieByTitle(ctx context.Context, title string) (*response.MovieResponse, error) {
	normalized, err := normalizeTitle(title)
	if err != nil {
		return nil, err
	}

	movie, err := s.findByTitle(ctx, s.repo, normalized)
	if err != nil {
		return nil, err
	}

	resp := response.MovieToResponse(movie)
	return &resp, nil
}

// findByTitle turns a missing row into ErrNotFound.
func (s *movieService) findByTitle(ctx context.Context, repo *repository.Repository, title string) (*entity.Movie, error) {
	movie, err := repo.Movie.FindByTitle(ctx, title)
	if err != nil {
		return nil, fmt.Errorf("get movie by title: %w", err)
	}
	if movie == nil {
		return nil, newError(ErrNotFound, "Movie not found: %s", title)
	}
	return movie, nil
}

func (s *movieService) AddMovie(ctx context.Context, req *request.MovieRequest) (*response.MovieResponse, error) {
	title, err := normalizeTitle(req.Title)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	movie := &entity.Movie{
		Base: entity.Base{
			CreatedAt: now,
			UpdatedAt: now,
		},
		Title:       title,
		Genre:       req.Genre,
		Duration:    *req.Duration,
		Rating:      *req.Rating,
		ReleaseYear: *req.ReleaseYear,
	}

	if err := s.repo.Movie.Create(ctx, movie); err != nil {
		if errors.Is(err, repository.ErrConstraintViolation) {
			s.log.Warn("Duplicate movie title", zap.String("title", title))
			return nil, newError(ErrUniqueConstraint, "Movie title must be unique. %q already exists", title).withCause(err)
		}
		return nil, fmt.Errorf("create movie: %w", err)
	}

	s.log.Info("Movie created",
		zap.Int64("movie_id", movie.ID),
		zap.String("title", movie.Title),
	)

	resp := response.MovieToResponse(movie)
	return &resp, nil
}

func (s *movieService) UpdateMovie(ctx context.Context, title string, req *request.MovieRequest) (*response.MovieResponse, error) {
	current, err := normalizeTitle(title)
	if err != nil {
		return nil, err
	}
	newTitle, err := normalizeTitle(req.Title)
	if err != nil {
		return nil, err
	}

	movie, err := s.findByTitle(ctx, s.repo, current)
	if err != nil {
		return nil, err
	}

	movie.Title = newTitle
	movie.Genre = req.Genre
	movie.Duration = *req.Duration
	movie.Rating = *req.Rating
	movie.ReleaseYear = *req.ReleaseYear
	movie.UpdatedAt = time.Now()

	if err := s.repo.Movie.Update(ctx, movie); err != nil {
		if errors.Is(err, repository.ErrConstraintViolation) {
			s.log.Warn("Movie title collision on update",
				zap.Int64("movie_id", movie.ID),
				zap.String("title", newTitle),
			)
			return nil, newError(ErrUniqueConstraint, "Movie title must be unique. %q already exists", newTitle).withCause(err)
		}
		return nil, fmt.Errorf("update movie: %w", err)
	}

	s.log.Info("Movie updated",
		zap.Int64("movie_id", movie.ID),
		zap.String("old_title", current),
		zap.String("title", movie.Title),
	)

	resp := response.MovieToResponse(movie)
	return &resp, nil
}

func (s *movieService) DeleteMovie(ctx context.Context, title string) error {
	normalized, err := normalizeTitle(title)
	if err != nil {
		return err
	}

	var movieID int64
	err = s.repo.Atomic(ctx, func(repo *repository.Repository) error {
		movie, err := s.findByTitle(ctx, repo, normalized)
		if err != nil {
			return err
		}
		movieID = movie.ID

		showtimes, err := repo.Showtime.FindByMovieID(ctx, movie.ID)
		if err != nil {
			return fmt.Errorf("get showtimes of movie: %w", err)
		}
		if len(showtimes) > 0 {
			return &InUseError{Entity: "movie", IDs: showtimeIDs(showtimes)}
		}

		if err := repo.Movie.Delete(ctx, movie.ID); err != nil {
			return fmt.Errorf("delete movie: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrReferenced) {
			err = s.stillReferenced(ctx, movieID, err)
		}
		var inUse *InUseError
		if errors.As(err, &inUse) {
			s.log.Warn("Movie still in use",
				zap.String("title", normalized),
				zap.Int64s("showtime_ids", inUse.IDs),
			)
		}
		return err
	}

	s.log.Info("Movie deleted",
		zap.Int64("movie_id", movieID),
		zap.String("title", normalized),
	)

	return nil
}

// stillReferenced reports a delete the store rejected on its foreign key,
// which happens when a showtime was added after the reference check ran.
func (s *movieService) stillReferenced(ctx context.Context, movieID int64, cause error) error {
	showtimes, err := s.repo.Showtime.FindByMovieID(ctx, movieID)
	if err != nil || len(showtimes) == 0 {
		return newError(ErrInUse, "Cannot delete movie %d because it is still used by showtimes", movieID).withCause(cause)
	}
	return &InUseError{Entity: "movie", IDs: showtimeIDs(showtimes)}
}

func showtimeIDs(showtimes []*entity.Showtime) []int64 {
	ids := make([]int64, len(showtimes))
	for i, showtime := range showtimes {
		ids[i] = showtime.ID
	}
	return ids
}
