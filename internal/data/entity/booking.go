package entity

import (
	"time"

	"github.com/google/uuid"
)

// Booking is append-only: it is never updated or deleted.
type Booking struct {
	ID         uuid.UUID `db:"id"`
	ShowtimeID int64     `db:"showtime_id"`
	SeatNumber int       `db:"seat_number"`
	UserID     uuid.UUID `db:"user_id"`
	CreatedAt  time.Time `db:"created_at"`
}
