package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"movie-booking/internal/data/entity"
	"movie-booking/internal/data/repository"
	"movie-booking/internal/data/repository/memory"
	"movie-booking/internal/dto/request"
	"movie-booking/internal/event"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []event.BookingCreated
	err    error
}

func (p *recordingPublisher) PublishBookingCreated(_ context.Context, evt event.BookingCreated) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) published() []event.BookingCreated {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]event.BookingCreated(nil), p.events...)
}

func newTestService(t *testing.T) (*Service, *recordingPublisher) {
	t.Helper()
	publisher := &recordingPublisher{}
	return NewService(memory.New().Repository(), publisher, zaptest.NewLogger(t)), publisher
}

// lateWriterRepo simulates a writer that commits between a service's
// reference check and its write. The checks see nothing, so only the store's
// own constraints can reject the write.
type lateWriterRepo struct {
	showtimes *unseenShowtimes
}

// unseenShowtimes hides existing showtimes from the next reference lookup.
type unseenShowtimes struct {
	repository.ShowtimeRepository
	hideNext bool
}

func (u *unseenShowtimes) FindByMovieID(ctx context.Context, movieID int64) ([]*entity.Showtime, error) {
	if u.hideNext {
		u.hideNext = false
		return nil, nil
	}
	return u.ShowtimeRepository.FindByMovieID(ctx, movieID)
}

func (u *unseenShowtimes) FindByTheaterID(ctx context.Context, theaterID int64) ([]*entity.Showtime, error) {
	if u.hideNext {
		u.hideNext = false
		return nil, nil
	}
	return u.ShowtimeRepository.FindByTheaterID(ctx, theaterID)
}

// unseenBookings never reports an existing booking.
type unseenBookings struct {
	repository.BookingRepository
}

func (unseenBookings) ExistsBySeat(context.Context, int64, int) (bool, error) {
	return false, nil
}

func (unseenBookings) ExistsByShowtime(context.Context, int64) (bool, error) {
	return false, nil
}

// newLateWriterService runs the services without a transaction scope so the
// wrapped stores are the ones every operation sees.
func newLateWriterService(t *testing.T) (*Service, *lateWriterRepo, *recordingPublisher) {
	t.Helper()
	base := memory.New().Repository()
	late := &lateWriterRepo{showtimes: &unseenShowtimes{ShowtimeRepository: base.Showtime}}
	repo := repository.New(base.Movie, base.Theater, late.showtimes, unseenBookings{base.Booking}, nil, nil)

	publisher := &recordingPublisher{}
	return NewService(repo, publisher, zaptest.NewLogger(t)), late, publisher
}

func movieRequest(title string) *request.MovieRequest {
	duration, rating, year := 120, 8.7, 2025
	return &request.MovieRequest{
		Title:       title,
		Genre:       "Action",
		Duration:    &duration,
		Rating:      &rating,
		ReleaseYear: &year,
	}
}

func theaterRequest(name string, capacity int) *request.TheaterRequest {
	return &request.TheaterRequest{Name: name, Capacity: capacity}
}

var day = time.Date(2025, 2, 14, 0, 0, 0, 0, time.UTC)

// clock returns hh:mm on the test day.
func clock(hour, minute int) time.Time {
	return day.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

func showtimeRequest(movieID int64, theater string, start, end time.Time) *request.ShowtimeRequest {
	price := 20.2
	return &request.ShowtimeRequest{
		MovieID:   &movieID,
		Theater:   theater,
		Price:     &price,
		StartTime: &request.DateTime{Time: start},
		EndTime:   &request.DateTime{Time: end},
	}
}

func bookingRequest(showtimeID int64, seat int, userID string) *request.BookingRequest {
	return &request.BookingRequest{
		ShowtimeID: &showtimeID,
		SeatNumber: seat,
		UserID:     userID,
	}
}

const userID = "84438967-f68f-4fa0-b620-0f08217e76af"

func mustAddMovie(t *testing.T, svc *Service, title string) int64 {
	t.Helper()
	movie, err := svc.Movie.AddMovie(context.Background(), movieRequest(title))
	require.NoError(t, err)
	return movie.ID
}

func mustAddShowtime(t *testing.T, svc *Service, movieID int64, theater string, start, end time.Time) int64 {
	t.Helper()
	showtime, err := svc.Showtime.AddShowtime(context.Background(), showtimeRequest(movieID, theater, start, end))
	require.NoError(t, err)
	return showtime.ID
}
