// Package memory is an in-process entity store with the same uniqueness,
// reference and transaction guarantees as the PostgreSQL repositories.
// Transactions are fully serialized; a failed transaction is rolled back
// from an undo journal.
package memory

import (
	"context"
	"fmt"
	"sync"

	"movie-booking/internal/data/entity"
	"movie-booking/internal/data/repository"

	"github.com/google/uuid"
)

type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex

	movies    map[int64]entity.Movie
	theaters  map[int64]entity.Theater
	showtimes map[int64]entity.Showtime
	bookings  map[uuid.UUID]entity.Booking

	nextMovieID    int64
	nextTheaterID  int64
	nextShowtimeID int64
}

func New() *Store {
	return &Store{
		movies:    make(map[int64]entity.Movie),
		theaters:  make(map[int64]entity.Theater),
		showtimes: make(map[int64]entity.Showtime),
		bookings:  make(map[uuid.UUID]entity.Booking),
	}
}

// Repository exposes the store through the repository interfaces.
func (s *Store) Repository() *repository.Repository {
	v := view{s: s}
	return repository.New(
		&movieStore{v}, &theaterStore{v}, &showtimeStore{v}, &bookingStore{v},
		s.atomic, nil,
	)
}

func (s *Store) atomic(ctx context.Context, fn func(repo *repository.Repository) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	j := &journal{}
	v := view{s: s, j: j}
	tx := repository.New(&movieStore{v}, &theaterStore{v}, &showtimeStore{v}, &bookingStore{v}, nil, nil)

	if err := fn(tx); err != nil {
		s.mu.Lock()
		j.rollback()
		s.mu.Unlock()
		return err
	}
	return nil
}

// journal records how to revert each write of a transaction.
type journal struct {
	undo []func()
}

func (j *journal) record(f func()) {
	if j != nil {
		j.undo = append(j.undo, f)
	}
}

func (j *journal) rollback() {
	for i := len(j.undo) - 1; i >= 0; i-- {
		j.undo[i]()
	}
	j.undo = nil
}

// view binds the store to an optional transaction journal. Callers hold s.mu
// while touching the maps.
type view struct {
	s *Store
	j *journal
}

func constraintError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", repository.ErrConstraintViolation, fmt.Sprintf(format, args...))
}

var (
	_ repository.MovieRepository    = (*movieStore)(nil)
	_ repository.TheaterRepository  = (*theaterStore)(nil)
	_ repository.ShowtimeRepository = (*showtimeStore)(nil)
	_ repository.BookingRepository  = (*bookingStore)(nil)
)
