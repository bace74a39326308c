package adaptor

import (
	"net/http"

	"movie-booking/internal/dto/request"
	"movie-booking/internal/usecase"
	"movie-booking/pkg/utils"

	"go.uber.org/zap"
)

type BookingHandler struct {
	errorResponder
	service usecase.BookingService
}

func NewBookingHandler(service usecase.BookingService, errorStatusMode string, log *zap.Logger) *BookingHandler {
	log = log.With(zap.String("handler", "booking"))
	return &BookingHandler{
		errorResponder: errorResponder{mode: errorStatusMode, log: log},
		service:        service,
	}
}

// BookTicket handles POST /bookings
func (h *BookingHandler) BookTicket(w http.ResponseWriter, r *http.Request) {
	var req request.BookingRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	booking, err := h.service.BookTicket(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "book ticket")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// GetBooking handles GET /bookings/{bookingId}
func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	booking, err := h.service.GetBooking(r.Context(), pathParam(r, "bookingId"))
	if err != nil {
		h.handleServiceError(w, err, "get booking")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}
