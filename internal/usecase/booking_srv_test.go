package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"movie-booking/internal/data/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupShowtime(t *testing.T, svc *Service, capacity int) int64 {
	t.Helper()
	_, err := svc.Theater.AddTheater(context.Background(), theaterRequest("hall", capacity))
	require.NoError(t, err)
	movie := mustAddMovie(t, svc, "movie")
	return mustAddShowtime(t, svc, movie, "hall", clock(10, 0), clock(12, 0))
}

func TestBookTicketSeatRange(t *testing.T) {
	ctx := context.Background()

	t.Run("capacity one", func(t *testing.T) {
		svc, _ := newTestService(t)
		showtime := setupShowtime(t, svc, 1)

		for _, seat := range []int{0, -1, 2} {
			_, err := svc.Booking.BookTicket(ctx, bookingRequest(showtime, seat, userID))
			assert.ErrorIs(t, err, ErrInvalidSeat, "seat %d", seat)
		}

		_, err := svc.Booking.BookTicket(ctx, bookingRequest(showtime, 1, userID))
		assert.NoError(t, err)
	})

	t.Run("large capacity", func(t *testing.T) {
		svc, _ := newTestService(t)
		showtime := setupShowtime(t, svc, 5000)

		_, err := svc.Booking.BookTicket(ctx, bookingRequest(showtime, 5000, userID))
		assert.NoError(t, err)
		_, err = svc.Booking.BookTicket(ctx, bookingRequest(showtime, 1, userID))
		assert.NoError(t, err)

		_, err = svc.Booking.BookTicket(ctx, bookingRequest(showtime, 5001, userID))
		assert.ErrorIs(t, err, ErrInvalidSeat)
		assert.ErrorContains(t, err, "out of range")
	})
}

func TestBookTicketFailures(t *testing.T) {
	ctx := context.Background()
	svc, publisher := newTestService(t)
	showtime := setupShowtime(t, svc, 10)

	_, err := svc.Booking.BookTicket(ctx, bookingRequest(showtime+1, 1, userID))
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Booking.BookTicket(ctx, bookingRequest(showtime, 1, "not-a-uuid"))
	assert.ErrorIs(t, err, ErrValidation)

	assert.Empty(t, publisher.published())
}

func TestBookTicketSurvivesPublishFailure(t *testing.T) {
	ctx := context.Background()
	svc, publisher := newTestService(t)
	publisher.err = errors.New("broker down")
	showtime := setupShowtime(t, svc, 10)

	booking, err := svc.Booking.BookTicket(ctx, bookingRequest(showtime, 4, userID))
	require.NoError(t, err)

	detail, err := svc.Booking.GetBooking(ctx, booking.BookingID)
	require.NoError(t, err)
	assert.Equal(t, showtime, detail.ShowtimeID)
	assert.Equal(t, 4, detail.SeatNumber)
}

func TestGetBooking(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	_, err := svc.Booking.GetBooking(ctx, "84438967-0000-4fa0-b620-0f08217e76af")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Booking.GetBooking(ctx, "42")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestConcurrentBookingsOfOneSeat(t *testing.T) {
	ctx := context.Background()
	svc, publisher := newTestService(t)
	showtime := setupShowtime(t, svc, 10)

	const attempts = 16
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		ok       int
		rejected int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Booking.BookTicket(ctx, bookingRequest(showtime, 7, userID))

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, ErrInvalidSeat):
				rejected++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, ok)
	assert.Equal(t, attempts-1, rejected)
	assert.Len(t, publisher.published(), 1)
}

func TestBookTicketSeatTakenAfterCheck(t *testing.T) {
	ctx := context.Background()
	svc, _, publisher := newLateWriterService(t)
	showtime := setupShowtime(t, svc, 10)

	_, err := svc.Booking.BookTicket(ctx, bookingRequest(showtime, 3, userID))
	require.NoError(t, err)

	_, err = svc.Booking.BookTicket(ctx, bookingRequest(showtime, 3, userID))
	assert.ErrorIs(t, err, ErrInvalidSeat)
	assert.ErrorIs(t, err, repository.ErrConstraintViolation)
	assert.EqualError(t, err, "Seat number 3 is already booked for this showtime.")

	assert.Len(t, publisher.published(), 1)
}
