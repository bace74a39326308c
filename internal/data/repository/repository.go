package repository

import (
	"context"
	"errors"
	"fmt"

	"movie-booking/pkg/database"

	"go.uber.org/zap"
)

// AtomicFunc runs fn against a Repository whose reads and writes belong to one
// transaction. The transaction commits when fn returns nil.
type AtomicFunc func(ctx context.Context, fn func(repo *Repository) error) error

type Repository struct {
	Movie    MovieRepository
	Theater  TheaterRepository
	Showtime ShowtimeRepository
	Booking  BookingRepository

	atomic AtomicFunc
	ping   func(ctx context.Context) error
}

// New assembles a Repository from individual stores. Alternative store
// implementations use it to plug in their own transaction scope.
func New(movie MovieRepository, theater TheaterRepository, showtime ShowtimeRepository, booking BookingRepository, atomic AtomicFunc, ping func(ctx context.Context) error) *Repository {
	return &Repository{
		Movie:    movie,
		Theater:  theater,
		Showtime: showtime,
		Booking:  booking,
		atomic:   atomic,
		ping:     ping,
	}
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	repo := newQuerierRepository(db, log)
	repo.atomic = func(ctx context.Context, fn func(repo *Repository) error) error {
		return withTx(ctx, db, log, fn)
	}
	repo.ping = db.Ping
	return repo
}

func newQuerierRepository(q database.Querier, log *zap.Logger) *Repository {
	return &Repository{
		Movie:    NewMovieRepository(q, log),
		Theater:  NewTheaterRepository(q, log),
		Showtime: NewShowtimeRepository(q, log),
		Booking:  NewBookingRepository(q, log),
	}
}

// Atomic runs fn inside a transaction. Without a transaction scope fn runs
// directly against r.
func (r *Repository) Atomic(ctx context.Context, fn func(repo *Repository) error) error {
	if r.atomic == nil {
		return fn(r)
	}
	return r.atomic(ctx, fn)
}

// Ping checks that the backing store is reachable.
func (r *Repository) Ping(ctx context.Context) error {
	if r.ping == nil {
		return nil
	}
	return r.ping(ctx)
}

func withTx(ctx context.Context, db database.PgxIface, log *zap.Logger, fn func(repo *Repository) error) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		log.Error("Failed to begin transaction", zap.Error(err))
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err := fn(newQuerierRepository(tx, log)); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			log.Error("Failed to rollback transaction", zap.Error(rbErr))
			return errors.Join(err, fmt.Errorf("rollback: %w", rbErr))
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		log.Error("Failed to commit transaction", zap.Error(err))
		return fmt.Errorf("commit transaction: %w", classify(err))
	}

	return nil
}
