package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"movie-booking/internal/data/entity"
	"movie-booking/internal/data/repository"
)

type theaterStore struct{ view }

func (t *theaterStore) byName(name string) (entity.Theater, bool) {
	for _, theater := range t.s.theaters {
		if theater.Name == name {
			return theater, true
		}
	}
	return entity.Theater{}, false
}

// insert expects t.s.mu to be held for writing.
func (t *theaterStore) insert(theater *entity.Theater) {
	t.s.nextTheaterID++
	theater.ID = t.s.nextTheaterID
	t.s.theaters[theater.ID] = *theater

	id := theater.ID
	t.j.record(func() { delete(t.s.theaters, id) })
}

func (t *theaterStore) Create(ctx context.Context, theater *entity.Theater) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	if _, taken := t.byName(theater.Name); taken {
		return fmt.Errorf("create theater %q: %w", theater.Name, constraintError("theater name %q", theater.Name))
	}

	t.insert(theater)
	return nil
}

func (t *theaterStore) FindByID(ctx context.Context, id int64) (*entity.Theater, error) {
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()

	theater, ok := t.s.theaters[id]
	if !ok {
		return nil, nil
	}
	return &theater, nil
}

func (t *theaterStore) FindByName(ctx context.Context, name string) (*entity.Theater, error) {
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()

	theater, ok := t.byName(name)
	if !ok {
		return nil, nil
	}
	return &theater, nil
}

func (t *theaterStore) FindAll(ctx context.Context) ([]*entity.Theater, error) {
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()

	theaters := make([]*entity.Theater, 0, len(t.s.theaters))
	for _, theater := range t.s.theaters {
		theater := theater
		theaters = append(theaters, &theater)
	}
	sort.Slice(theaters, func(i, j int) bool { return theaters[i].ID < theaters[j].ID })
	return theaters, nil
}

func (t *theaterStore) FindOrCreate(ctx context.Context, name string, capacity int) (*entity.Theater, bool, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	if theater, ok := t.byName(name); ok {
		return &theater, false, nil
	}

	now := time.Now()
	theater := &entity.Theater{
		Base:     entity.Base{CreatedAt: now, UpdatedAt: now},
		Name:     name,
		Capacity: capacity,
	}
	t.insert(theater)
	return theater, true, nil
}

func (t *theaterStore) Update(ctx context.Context, theater *entity.Theater) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	old, ok := t.s.theaters[theater.ID]
	if !ok {
		return fmt.Errorf("theater %d not found", theater.ID)
	}
	if other, taken := t.byName(theater.Name); taken && other.ID != theater.ID {
		return fmt.Errorf("update theater %d: %w", theater.ID, constraintError("theater name %q", theater.Name))
	}

	t.s.theaters[theater.ID] = *theater
	t.j.record(func() { t.s.theaters[old.ID] = old })
	return nil
}

func (t *theaterStore) Delete(ctx context.Context, id int64) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	old, ok := t.s.theaters[id]
	if !ok {
		return fmt.Errorf("theater %d not found", id)
	}
	for _, showtime := range t.s.showtimes {
		if showtime.TheaterID == id {
			return fmt.Errorf("delete theater %d: %w", id, repository.ErrReferenced)
		}
	}

	delete(t.s.theaters, id)
	t.j.record(func() { t.s.theaters[old.ID] = old })
	return nil
}
