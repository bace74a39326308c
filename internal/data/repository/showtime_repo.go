package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"movie-booking/internal/data/entity"
	"movie-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ShowtimeRepository interface {
	Create(ctx context.Context, showtime *entity.Showtime) error
	FindByID(ctx context.Context, id int64) (*entity.Showtime, error)
	FindAll(ctx context.Context) ([]*entity.Showtime, error)
	FindByMovieID(ctx context.Context, movieID int64) ([]*entity.Showtime, error)
	FindByTheaterID(ctx context.Context, theaterID int64) ([]*entity.Showtime, error)
	// FindOverlapping returns the showtimes of a theater whose interval
	// intersects [start, end], endpoints included, ordered by id.
	FindOverlapping(ctx context.Context, theaterID int64, start, end time.Time) ([]*entity.Showtime, error)
	// LockTheater serializes showtime writers of one theater until the
	// surrounding transaction ends.
	LockTheater(ctx context.Context, theaterID int64) error
	Update(ctx context.Context, showtime *entity.Showtime) error
	Delete(ctx context.Context, id int64) error
}

type showtimeRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewShowtimeRepository(db database.Querier, log *zap.Logger) ShowtimeRepository {
	return &showtimeRepository{
		db:  db,
		log: log.With(zap.String("repository", "showtime")),
	}
}

const showtimeColumns = `id, movie_id, theater_id, price, start_time, end_time, created_at, updated_at`

func scanShowtime(row pgx.Row) (*entity.Showtime, error) {
	var showtime entity.Showtime
	err := row.Scan(
		&showtime.ID,
		&showtime.MovieID,
		&showtime.TheaterID,
		&showtime.Price,
		&showtime.StartTime,
		&showtime.EndTime,
		&showtime.CreatedAt,
		&showtime.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &showtime, nil
}

func (r *showtimeRepository) Create(ctx context.Context, showtime *entity.Showtime) error {
	query := `
		INSERT INTO showtimes (movie_id, theater_id, price, start_time, end_time, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		showtime.MovieID,
		showtime.TheaterID,
		showtime.Price,
		showtime.StartTime,
		showtime.EndTime,
		showtime.CreatedAt,
		showtime.UpdatedAt,
	).Scan(&showtime.ID)

	if err != nil {
		err = classify(err)
		r.log.Error("Failed to create showtime",
			zap.Error(err),
			zap.Int64("movie_id", showtime.MovieID),
			zap.Int64("theater_id", showtime.TheaterID),
			zap.Time("start_time", showtime.StartTime),
		)
		return fmt.Errorf("create showtime for movie %d theater %d: %w",
			showtime.MovieID, showtime.TheaterID, err)
	}

	return nil
}

func (r *showtimeRepository) FindByID(ctx context.Context, id int64) (*entity.Showtime, error) {
	query := `SELECT ` + showtimeColumns + ` FROM showtimes WHERE id = $1`

	showtime, err := scanShowtime(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find showtime by ID",
			zap.Error(err),
			zap.Int64("showtime_id", id),
		)
		return nil, fmt.Errorf("find showtime by ID %d: %w", id, err)
	}

	return showtime, nil
}

func (r *showtimeRepository) FindAll(ctx context.Context) ([]*entity.Showtime, error) {
	query := `SELECT ` + showtimeColumns + ` FROM showtimes ORDER BY id`
	return r.list(ctx, "find all showtimes", query)
}

func (r *showtimeRepository) FindByMovieID(ctx context.Context, movieID int64) ([]*entity.Showtime, error) {
	query := `SELECT ` + showtimeColumns + ` FROM showtimes WHERE movie_id = $1 ORDER BY id`
	return r.list(ctx, fmt.Sprintf("find showtimes by movie %d", movieID), query, movieID)
}

func (r *showtimeRepository) FindByTheaterID(ctx context.Context, theaterID int64) ([]*entity.Showtime, error) {
	query := `SELECT ` + showtimeColumns + ` FROM showtimes WHERE theater_id = $1 ORDER BY id`
	return r.list(ctx, fmt.Sprintf("find showtimes by theater %d", theaterID), query, theaterID)
}

func (r *showtimeRepository) FindOverlapping(ctx context.Context, theaterID int64, start, end time.Time) ([]*entity.Showtime, error) {
	query := `
		SELECT ` + showtimeColumns + `
		FROM showtimes
		WHERE theater_id = $1 AND start_time <= $3 AND end_time >= $2
		ORDER BY id
	`
	return r.list(ctx, fmt.Sprintf("find overlapping showtimes in theater %d", theaterID), query, theaterID, start, end)
}

func (r *showtimeRepository) list(ctx context.Context, operation, query string, args ...any) ([]*entity.Showtime, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to query showtimes",
			zap.Error(err),
			zap.String("operation", operation),
		)
		return nil, fmt.Errorf("%s: %w", operation, err)
	}
	defer rows.Close()

	showtimes := []*entity.Showtime{}
	for rows.Next() {
		showtime, err := scanShowtime(rows)
		if err != nil {
			r.log.Error("Failed to scan showtime row", zap.Error(err))
			return nil, fmt.Errorf("scan showtime row: %w", err)
		}
		showtimes = append(showtimes, showtime)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate showtime rows: %w", err)
	}

	return showtimes, nil
}

func (r *showtimeRepository) LockTheater(ctx context.Context, theaterID int64) error {
	if _, err := r.db.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, theaterID); err != nil {
		r.log.Error("Failed to lock theater",
			zap.Error(err),
			zap.Int64("theater_id", theaterID),
		)
		return fmt.Errorf("lock theater %d: %w", theaterID, err)
	}
	return nil
}

func (r *showtimeRepository) Update(ctx context.Context, showtime *entity.Showtime) error {
	query := `
		UPDATE showtimes
		SET movie_id = $2, theater_id = $3, price = $4, start_time = $5, end_time = $6, updated_at = $7
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		showtime.ID,
		showtime.MovieID,
		showtime.TheaterID,
		showtime.Price,
		showtime.StartTime,
		showtime.EndTime,
		showtime.UpdatedAt,
	)

	if err != nil {
		err = classify(err)
		r.log.Error("Failed to update showtime",
			zap.Error(err),
			zap.Int64("showtime_id", showtime.ID),
		)
		return fmt.Errorf("update showtime %d: %w", showtime.ID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("showtime %d not found", showtime.ID)
	}

	return nil
}

func (r *showtimeRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM showtimes WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete showtime",
			zap.Error(err),
			zap.Int64("showtime_id", id),
		)
		return fmt.Errorf("delete showtime %d: %w", id, classify(err))
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("showtime %d not found", id)
	}

	r.log.Info("Showtime deleted", zap.Int64("showtime_id", id))
	return nil
}
