// Package event publishes domain events produced by the booking flow.
package event

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// BookingCreated is emitted once per successfully stored booking.
type BookingCreated struct {
	BookingID  uuid.UUID `json:"bookingId"`
	ShowtimeID int64     `json:"showtimeId"`
	SeatNumber int       `json:"seatNumber"`
	UserID     uuid.UUID `json:"userId"`
	CreatedAt  time.Time `json:"createdAt"`
}

type Publisher interface {
	PublishBookingCreated(ctx context.Context, evt BookingCreated) error
	Close() error
}

// NoopPublisher drops every event.
type NoopPublisher struct{}

func (NoopPublisher) PublishBookingCreated(context.Context, BookingCreated) error { return nil }

func (NoopPublisher) Close() error { return nil }
