package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingScenario(t *testing.T) {
	ctx := context.Background()
	svc, publisher := newTestService(t)

	movie, err := svc.Movie.AddMovie(ctx, movieRequest("test movie"))
	require.NoError(t, err)
	assert.Equal(t, "Test Movie", movie.Title)

	theater, err := svc.Theater.AddTheater(ctx, theaterRequest("overlap theater", 100))
	require.NoError(t, err)
	assert.Equal(t, "Overlap Theater", theater.Name)

	first, err := svc.Showtime.AddShowtime(ctx, showtimeRequest(movie.ID, "overlap theater", clock(10, 0), clock(12, 0)))
	require.NoError(t, err)
	assert.Equal(t, "Overlap Theater", first.Theater)
	assert.Equal(t, movie.ID, first.MovieID)

	_, err = svc.Showtime.AddShowtime(ctx, showtimeRequest(movie.ID, "overlap theater", clock(11, 0), clock(13, 0)))
	assert.ErrorIs(t, err, ErrOverlap)

	booking, err := svc.Booking.BookTicket(ctx, bookingRequest(first.ID, 10, userID))
	require.NoError(t, err)
	assert.NotEmpty(t, booking.BookingID)

	_, err = svc.Booking.BookTicket(ctx, bookingRequest(first.ID, 10, userID))
	assert.ErrorIs(t, err, ErrInvalidSeat)
	assert.ErrorContains(t, err, "already booked")

	_, err = svc.Booking.BookTicket(ctx, bookingRequest(first.ID, 200, userID))
	assert.ErrorIs(t, err, ErrInvalidSeat)
	assert.EqualError(t, err, "Seat number 200 is out of range. Theater capacity: 100")

	err = svc.Movie.DeleteMovie(ctx, "test movie")
	assert.ErrorIs(t, err, ErrInUse)
	var inUse *InUseError
	require.True(t, errors.As(err, &inUse))
	assert.Equal(t, []int64{first.ID}, inUse.IDs)

	events := publisher.published()
	require.Len(t, events, 1)
	assert.Equal(t, booking.BookingID, events[0].BookingID.String())
	assert.Equal(t, 10, events[0].SeatNumber)
}
