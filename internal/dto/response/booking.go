package response

import "movie-booking/internal/data/entity"

type BookingResponse struct {
	BookingID string `json:"bookingId"`
}

// BookingDetailResponse omits the user id.
type BookingDetailResponse struct {
	BookingID  string `json:"bookingId"`
	ShowtimeID int64  `json:"showtimeId"`
	SeatNumber int    `json:"seatNumber"`
}

func BookingToResponse(booking *entity.Booking) BookingResponse {
	return BookingResponse{BookingID: booking.ID.String()}
}

func BookingToDetailResponse(booking *entity.Booking) BookingDetailResponse {
	return BookingDetailResponse{
		BookingID:  booking.ID.String(),
		ShowtimeID: booking.ShowtimeID,
		SeatNumber: booking.SeatNumber,
	}
}
