package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"movie-booking/internal/data/entity"
	"movie-booking/internal/data/repository"
)

type showtimeStore struct{ view }

// checkRefs expects s.mu to be held.
func (st *showtimeStore) checkRefs(showtime *entity.Showtime) error {
	if _, ok := st.s.movies[showtime.MovieID]; !ok {
		return fmt.Errorf("movie %d does not exist", showtime.MovieID)
	}
	if _, ok := st.s.theaters[showtime.TheaterID]; !ok {
		return fmt.Errorf("theater %d does not exist", showtime.TheaterID)
	}
	return nil
}

func (st *showtimeStore) Create(ctx context.Context, showtime *entity.Showtime) error {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()

	if err := st.checkRefs(showtime); err != nil {
		return fmt.Errorf("create showtime: %w", err)
	}

	st.s.nextShowtimeID++
	showtime.ID = st.s.nextShowtimeID
	st.s.showtimes[showtime.ID] = *showtime

	id := showtime.ID
	st.j.record(func() { delete(st.s.showtimes, id) })
	return nil
}

func (st *showtimeStore) FindByID(ctx context.Context, id int64) (*entity.Showtime, error) {
	st.s.mu.RLock()
	defer st.s.mu.RUnlock()

	showtime, ok := st.s.showtimes[id]
	if !ok {
		return nil, nil
	}
	return &showtime, nil
}

func (st *showtimeStore) filter(keep func(entity.Showtime) bool) []*entity.Showtime {
	st.s.mu.RLock()
	defer st.s.mu.RUnlock()

	showtimes := []*entity.Showtime{}
	for _, showtime := range st.s.showtimes {
		if keep(showtime) {
			showtime := showtime
			showtimes = append(showtimes, &showtime)
		}
	}
	sort.Slice(showtimes, func(i, j int) bool { return showtimes[i].ID < showtimes[j].ID })
	return showtimes
}

func (st *showtimeStore) FindAll(ctx context.Context) ([]*entity.Showtime, error) {
	return st.filter(func(entity.Showtime) bool { return true }), nil
}

func (st *showtimeStore) FindByMovieID(ctx context.Context, movieID int64) ([]*entity.Showtime, error) {
	return st.filter(func(s entity.Showtime) bool { return s.MovieID == movieID }), nil
}

func (st *showtimeStore) FindByTheaterID(ctx context.Context, theaterID int64) ([]*entity.Showtime, error) {
	return st.filter(func(s entity.Showtime) bool { return s.TheaterID == theaterID }), nil
}

func (st *showtimeStore) FindOverlapping(ctx context.Context, theaterID int64, start, end time.Time) ([]*entity.Showtime, error) {
	return st.filter(func(s entity.Showtime) bool {
		return s.TheaterID == theaterID && s.Overlaps(start, end)
	}), nil
}

// LockTheater is a no-op: transactions on this store are already serialized.
func (st *showtimeStore) LockTheater(ctx context.Context, theaterID int64) error {
	return nil
}

func (st *showtimeStore) Update(ctx context.Context, showtime *entity.Showtime) error {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()

	old, ok := st.s.showtimes[showtime.ID]
	if !ok {
		return fmt.Errorf("showtime %d not found", showtime.ID)
	}
	if err := st.checkRefs(showtime); err != nil {
		return fmt.Errorf("update showtime %d: %w", showtime.ID, err)
	}

	st.s.showtimes[showtime.ID] = *showtime
	st.j.record(func() { st.s.showtimes[old.ID] = old })
	return nil
}

func (st *showtimeStore) Delete(ctx context.Context, id int64) error {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()

	old, ok := st.s.showtimes[id]
	if !ok {
		return fmt.Errorf("showtime %d not found", id)
	}
	for _, booking := range st.s.bookings {
		if booking.ShowtimeID == id {
			return fmt.Errorf("delete showtime %d: %w", id, repository.ErrReferenced)
		}
	}

	delete(st.s.showtimes, id)
	st.j.record(func() { st.s.showtimes[old.ID] = old })
	return nil
}
