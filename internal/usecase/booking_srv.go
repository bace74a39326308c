package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"movie-booking/internal/data/entity"
	"movie-booking/internal/data/repository"
	"movie-booking/internal/dto/request"
	"movie-booking/internal/dto/response"
	"movie-booking/internal/event"
	"movie-booking/pkg/utils"

	"go.uber.org/zap"
)

type BookingService interface {
	BookTicket(ctx context.Context, req *request.BookingRequest) (*response.BookingResponse, error)
	GetBooking(ctx context.Context, bookingID string) (*response.BookingDetailResponse, error)
}

type bookingService struct {
	repo      *repository.Repository
	publisher event.Publisher
	log       *zap.Logger
}

func NewBookingService(
	repo *repository.Repository,
	publisher event.Publisher,
	log *zap.Logger,
) BookingService {
	if publisher == nil {
		publisher = event.NoopPublisher{}
	}
	return &bookingService{
		repo:      repo,
		publisher: publisher,
		log:       log.With(zap.String("service", "booking")),
	}
}

func alreadyBooked(seatNumber int) *Error {
	return newError(ErrInvalidSeat, "Seat number %d is already booked for this showtime.", seatNumber)
}

// BookTicket reserves one seat. The seat pre-check and the store's unique
// (showtime, seat) constraint both end in the same "already booked" error.
func (s *bookingService) BookTicket(ctx context.Context, req *request.BookingRequest) (*response.BookingResponse, error) {
	userID, err := utils.ParseUUID(req.UserID)
	if err != nil {
		return nil, newError(ErrValidation, "Invalid user id: %s", req.UserID)
	}
	showtimeID := *req.ShowtimeID
	seat := req.SeatNumber

	showtime, err := findShowtime(ctx, s.repo, showtimeID)
	if err != nil {
		return nil, err
	}

	theater, err := findTheater(ctx, s.repo, showtime.TheaterID)
	if err != nil {
		return nil, err
	}

	if seat < 1 || seat > theater.Capacity {
		s.log.Warn("Seat out of range",
			zap.Int64("showtime_id", showtimeID),
			zap.Int("seat_number", seat),
			zap.Int("capacity", theater.Capacity),
		)
		return nil, newError(ErrInvalidSeat, "Seat number %d is out of range. Theater capacity: %d", seat, theater.Capacity)
	}

	taken, err := s.repo.Booking.ExistsBySeat(ctx, showtimeID, seat)
	if err != nil {
		return nil, fmt.Errorf("check seat: %w", err)
	}
	if taken {
		return nil, alreadyBooked(seat)
	}

	booking := &entity.Booking{
		ID:         utils.GenerateUUID(),
		ShowtimeID: showtimeID,
		SeatNumber: seat,
		UserID:     userID,
		CreatedAt:  time.Now(),
	}

	if err := s.repo.Booking.Create(ctx, booking); err != nil {
		if errors.Is(err, repository.ErrConstraintViolation) {
			s.log.Info("Seat taken by a concurrent booking",
				zap.Int64("showtime_id", showtimeID),
				zap.Int("seat_number", seat),
			)
			return nil, alreadyBooked(seat).withCause(err)
		}
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.Int64("showtime_id", showtimeID),
		zap.Int("seat_number", seat),
	)

	evt := event.BookingCreated{
		BookingID:  booking.ID,
		ShowtimeID: booking.ShowtimeID,
		SeatNumber: booking.SeatNumber,
		UserID:     booking.UserID,
		CreatedAt:  booking.CreatedAt,
	}
	if err := s.publisher.PublishBookingCreated(ctx, evt); err != nil {
		s.log.Warn("Failed to publish booking event",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
		)
	}

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) GetBooking(ctx context.Context, bookingID string) (*response.BookingDetailResponse, error) {
	id, err := utils.ParseUUID(bookingID)
	if err != nil {
		return nil, newError(ErrValidation, "Invalid booking id: %s", bookingID)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to get booking", zap.Error(err), zap.String("booking_id", bookingID))
		return nil, fmt.Errorf("get booking: %w", err)
	}
	if booking == nil {
		return nil, newError(ErrNotFound, "Booking not found: %s", bookingID)
	}

	resp := response.BookingToDetailResponse(booking)
	return &resp, nil
}
