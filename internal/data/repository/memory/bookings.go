package memory

import (
	"context"
	"fmt"

	"movie-booking/internal/data/entity"

	"github.com/google/uuid"
)

type bookingStore struct{ view }

func (b *bookingStore) seatTaken(showtimeID int64, seatNumber int) bool {
	for _, booking := range b.s.bookings {
		if booking.ShowtimeID == showtimeID && booking.SeatNumber == seatNumber {
			return true
		}
	}
	return false
}

func (b *bookingStore) Create(ctx context.Context, booking *entity.Booking) error {
	b.s.mu.Lock()
	defer b.s.mu.Unlock()

	if _, ok := b.s.showtimes[booking.ShowtimeID]; !ok {
		return fmt.Errorf("create booking: showtime %d does not exist", booking.ShowtimeID)
	}
	if _, ok := b.s.bookings[booking.ID]; ok {
		return fmt.Errorf("create booking: %w", constraintError("booking id %s", booking.ID))
	}
	if b.seatTaken(booking.ShowtimeID, booking.SeatNumber) {
		return fmt.Errorf("create booking for showtime %d seat %d: %w",
			booking.ShowtimeID, booking.SeatNumber,
			constraintError("uk_showtime_seat (%d, %d)", booking.ShowtimeID, booking.SeatNumber))
	}

	b.s.bookings[booking.ID] = *booking

	id := booking.ID
	b.j.record(func() { delete(b.s.bookings, id) })
	return nil
}

func (b *bookingStore) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	b.s.mu.RLock()
	defer b.s.mu.RUnlock()

	booking, ok := b.s.bookings[id]
	if !ok {
		return nil, nil
	}
	return &booking, nil
}

func (b *bookingStore) ExistsBySeat(ctx context.Context, showtimeID int64, seatNumber int) (bool, error) {
	b.s.mu.RLock()
	defer b.s.mu.RUnlock()

	return b.seatTaken(showtimeID, seatNumber), nil
}

func (b *bookingStore) ExistsByShowtime(ctx context.Context, showtimeID int64) (bool, error) {
	b.s.mu.RLock()
	defer b.s.mu.RUnlock()

	for _, booking := range b.s.bookings {
		if booking.ShowtimeID == showtimeID {
			return true, nil
		}
	}
	return false, nil
}
