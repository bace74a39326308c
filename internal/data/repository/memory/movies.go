package memory

import (
	"context"
	"fmt"
	"sort"

	"movie-booking/internal/data/entity"
	"movie-booking/internal/data/repository"
)

type movieStore struct{ view }

func (m *movieStore) titleTaken(title string, except int64) bool {
	for id, movie := range m.s.movies {
		if id != except && movie.Title == title {
			return true
		}
	}
	return false
}

func (m *movieStore) Create(ctx context.Context, movie *entity.Movie) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	if m.titleTaken(movie.Title, 0) {
		return fmt.Errorf("create movie %q: %w", movie.Title, constraintError("movie title %q", movie.Title))
	}

	m.s.nextMovieID++
	movie.ID = m.s.nextMovieID
	m.s.movies[movie.ID] = *movie

	id := movie.ID
	m.j.record(func() { delete(m.s.movies, id) })
	return nil
}

func (m *movieStore) FindByID(ctx context.Context, id int64) (*entity.Movie, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	movie, ok := m.s.movies[id]
	if !ok {
		return nil, nil
	}
	return &movie, nil
}

func (m *movieStore) FindByTitle(ctx context.Context, title string) (*entity.Movie, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	for _, movie := range m.s.movies {
		if movie.Title == title {
			return &movie, nil
		}
	}
	return nil, nil
}

func (m *movieStore) FindAll(ctx context.Context) ([]*entity.Movie, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	movies := make([]*entity.Movie, 0, len(m.s.movies))
	for _, movie := range m.s.movies {
		movie := movie
		movies = append(movies, &movie)
	}
	sort.Slice(movies, func(i, j int) bool { return movies[i].ID < movies[j].ID })
	return movies, nil
}

func (m *movieStore) Update(ctx context.Context, movie *entity.Movie) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	old, ok := m.s.movies[movie.ID]
	if !ok {
		return fmt.Errorf("movie %d not found", movie.ID)
	}
	if m.titleTaken(movie.Title, movie.ID) {
		return fmt.Errorf("update movie %d: %w", movie.ID, constraintError("movie title %q", movie.Title))
	}

	m.s.movies[movie.ID] = *movie
	m.j.record(func() { m.s.movies[old.ID] = old })
	return nil
}

func (m *movieStore) Delete(ctx context.Context, id int64) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	old, ok := m.s.movies[id]
	if !ok {
		return fmt.Errorf("movie %d not found", id)
	}
	for _, showtime := range m.s.showtimes {
		if showtime.MovieID == id {
			return fmt.Errorf("delete movie %d: %w", id, repository.ErrReferenced)
		}
	}

	delete(m.s.movies, id)
	m.j.record(func() { m.s.movies[old.ID] = old })
	return nil
}
