package repository

import (
	"context"
	"errors"
	"fmt"

	"movie-booking/internal/data/entity"
	"movie-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type BookingRepository interface {
	// Create fails with ErrConstraintViolation when the seat of the showtime
	// is already taken.
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	ExistsBySeat(ctx context.Context, showtimeID int64, seatNumber int) (bool, error)
	ExistsByShowtime(ctx context.Context, showtimeID int64) (bool, error)
}

type bookingRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewBookingRepository(db database.Querier, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (id, showtime_id, seat_number, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.ShowtimeID,
		booking.SeatNumber,
		booking.UserID,
		booking.CreatedAt,
	)

	if err != nil {
		err = classify(err)
		if errors.Is(err, ErrConstraintViolation) {
			r.log.Warn("Seat taken by a concurrent booking",
				zap.Int64("showtime_id", booking.ShowtimeID),
				zap.Int("seat_number", booking.SeatNumber),
			)
		} else {
			r.log.Error("Failed to create booking",
				zap.Error(err),
				zap.String("booking_id", booking.ID.String()),
				zap.Int64("showtime_id", booking.ShowtimeID),
			)
		}
		return fmt.Errorf("create booking for showtime %d seat %d: %w",
			booking.ShowtimeID, booking.SeatNumber, err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `
		SELECT id, showtime_id, seat_number, user_id, created_at
		FROM bookings
		WHERE id = $1
	`

	var booking entity.Booking
	err := r.db.QueryRow(ctx, query, id).Scan(
		&booking.ID,
		&booking.ShowtimeID,
		&booking.SeatNumber,
		&booking.UserID,
		&booking.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return &booking, nil
}

func (r *bookingRepository) ExistsBySeat(ctx context.Context, showtimeID int64, seatNumber int) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM bookings WHERE showtime_id = $1 AND seat_number = $2)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, showtimeID, seatNumber).Scan(&exists); err != nil {
		r.log.Error("Failed to check seat booking",
			zap.Error(err),
			zap.Int64("showtime_id", showtimeID),
			zap.Int("seat_number", seatNumber),
		)
		return false, fmt.Errorf("check seat %d of showtime %d: %w", seatNumber, showtimeID, err)
	}

	return exists, nil
}

func (r *bookingRepository) ExistsByShowtime(ctx context.Context, showtimeID int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM bookings WHERE showtime_id = $1)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, showtimeID).Scan(&exists); err != nil {
		r.log.Error("Failed to check showtime bookings",
			zap.Error(err),
			zap.Int64("showtime_id", showtimeID),
		)
		return false, fmt.Errorf("check bookings of showtime %d: %w", showtimeID, err)
	}

	return exists, nil
}
