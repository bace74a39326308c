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

type TheaterRepository interface {
	Create(ctx context.Context, theater *entity.Theater) error
	FindByID(ctx context.Context, id int64) (*entity.Theater, error)
	FindByName(ctx context.Context, name string) (*entity.Theater, error)
	FindAll(ctx context.Context) ([]*entity.Theater, error)
	// FindOrCreate returns the theater called name, inserting it with the
	// given capacity first when it does not exist. created reports the insert.
	FindOrCreate(ctx context.Context, name string, capacity int) (theater *entity.Theater, created bool, err error)
	Update(ctx context.Context, theater *entity.Theater) error
	Delete(ctx context.Context, id int64) error
}

type theaterRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewTheaterRepository(db database.Querier, log *zap.Logger) TheaterRepository {
	return &theaterRepository{
		db:  db,
		log: log.With(zap.String("repository", "theater")),
	}
}

const theaterColumns = `id, name, capacity, created_at, updated_at`

func scanTheater(row pgx.Row) (*entity.Theater, error) {
	var theater entity.Theater
	err := row.Scan(
		&theater.ID,
		&theater.Name,
		&theater.Capacity,
		&theater.CreatedAt,
		&theater.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &theater, nil
}

func (r *theaterRepository) Create(ctx context.Context, theater *entity.Theater) error {
	query := `
		INSERT INTO theaters (name, capacity, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		theater.Name,
		theater.Capacity,
		theater.CreatedAt,
		theater.UpdatedAt,
	).Scan(&theater.ID)

	if err != nil {
		err = classify(err)
		if !errors.Is(err, ErrConstraintViolation) {
			r.log.Error("Failed to create theater",
				zap.Error(err),
				zap.String("name", theater.Name),
				zap.Int("capacity", theater.Capacity),
			)
		}
		return fmt.Errorf("create theater %q: %w", theater.Name, err)
	}

	return nil
}

func (r *theaterRepository) FindByID(ctx context.Context, id int64) (*entity.Theater, error) {
	query := `SELECT ` + theaterColumns + ` FROM theaters WHERE id = $1`

	theater, err := scanTheater(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find theater by ID",
			zap.Error(err),
			zap.Int64("theater_id", id),
		)
		return nil, fmt.Errorf("find theater by ID %d: %w", id, err)
	}

	return theater, nil
}

func (r *theaterRepository) FindByName(ctx context.Context, name string) (*entity.Theater, error) {
	query := `SELECT ` + theaterColumns + ` FROM theaters WHERE name = $1`

	theater, err := scanTheater(r.db.QueryRow(ctx, query, name))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find theater by name",
			zap.Error(err),
			zap.String("name", name),
		)
		return nil, fmt.Errorf("find theater by name %q: %w", name, err)
	}

	return theater, nil
}

func (r *theaterRepository) FindAll(ctx context.Context) ([]*entity.Theater, error) {
	query := `SELECT ` + theaterColumns + ` FROM theaters ORDER BY id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find all theaters", zap.Error(err))
		return nil, fmt.Errorf("find all theaters: %w", err)
	}
	defer rows.Close()

	theaters := []*entity.Theater{}
	for rows.Next() {
		theater, err := scanTheater(rows)
		if err != nil {
			r.log.Error("Failed to scan theater row", zap.Error(err))
			return nil, fmt.Errorf("scan theater row: %w", err)
		}
		theaters = append(theaters, theater)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate theater rows: %w", err)
	}

	return theaters, nil
}

func (r *theaterRepository) FindOrCreate(ctx context.Context, name string, capacity int) (*entity.Theater, bool, error) {
	// ON CONFLICT keeps concurrent resolvers of the same name from failing;
	// the loser of the race reads the winner's row below.
	query := `
		INSERT INTO theaters (name, capacity, created_at, updated_at)
		VALUES ($1, $2, $3, $3)
		ON CONFLICT (name) DO NOTHING
		RETURNING ` + theaterColumns

	theater, err := scanTheater(r.db.QueryRow(ctx, query, name, capacity, time.Now()))
	if err == nil {
		r.log.Info("Theater created on demand",
			zap.Int64("theater_id", theater.ID),
			zap.String("name", name),
			zap.Int("capacity", capacity),
		)
		return theater, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		r.log.Error("Failed to resolve theater",
			zap.Error(err),
			zap.String("name", name),
		)
		return nil, false, fmt.Errorf("resolve theater %q: %w", name, err)
	}

	theater, err = r.FindByName(ctx, name)
	if err != nil {
		return nil, false, err
	}
	if theater == nil {
		return nil, false, fmt.Errorf("resolve theater %q: row vanished after conflict", name)
	}

	return theater, false, nil
}

func (r *theaterRepository) Update(ctx context.Context, theater *entity.Theater) error {
	query := `
		UPDATE theaters
		SET name = $2, capacity = $3, updated_at = $4
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		theater.ID,
		theater.Name,
		theater.Capacity,
		theater.UpdatedAt,
	)

	if err != nil {
		err = classify(err)
		if !errors.Is(err, ErrConstraintViolation) {
			r.log.Error("Failed to update theater",
				zap.Error(err),
				zap.Int64("theater_id", theater.ID),
			)
		}
		return fmt.Errorf("update theater %d: %w", theater.ID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("theater %d not found", theater.ID)
	}

	return nil
}

func (r *theaterRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM theaters WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete theater",
			zap.Error(err),
			zap.Int64("theater_id", id),
		)
		return fmt.Errorf("delete theater %d: %w", id, classify(err))
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("theater %d not found", id)
	}

	r.log.Info("Theater deleted", zap.Int64("theater_id", id))
	return nil
}
