package entity

import "time"

type Showtime struct {
	Base
	MovieID   int64     `db:"movie_id"`
	TheaterID int64     `db:"theater_id"`
	Price     float64   `db:"price"`
	StartTime time.Time `db:"start_time"`
	EndTime   time.Time `db:"end_time"`
}

// Overlaps reports whether s and the interval [start, end] intersect.
// Touching endpoints count as an overlap.
func (s *Showtime) Overlaps(start, end time.Time) bool {
	return !s.StartTime.After(end) && !s.EndTime.Before(start)
}
