package request

type BookingRequest struct {
	ShowtimeID *int64 `json:"showtimeId" validate:"required,min=1"`
	SeatNumber int    `json:"seatNumber" validate:"min=1"`
	UserID     string `json:"userId" validate:"required,uuid"`
}
