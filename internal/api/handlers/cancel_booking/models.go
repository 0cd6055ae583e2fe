package cancel_booking

import (
	"time"

	cancelBooking "github.com/salonhub/booking-engine/internal/usecase/cancel_booking"
)

// CancelBookingRequest HTTP request model
type CancelBookingRequest struct {
	BookingCode string `json:"bookingCode"`
}

// CancelBookingResponse HTTP response model
type CancelBookingResponse struct {
	Success     bool   `json:"success"`
	BookingCode string `json:"bookingCode,omitempty"`
	Message     string `json:"message"`
	StartsAt    string `json:"startsAt,omitempty"`
	EndsAt      string `json:"endsAt,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *cancelBooking.Response) *CancelBookingResponse {
	return &CancelBookingResponse{
		Success:     true,
		BookingCode: resp.Code,
		Message:     msgCancelled,
		StartsAt:    resp.StartsAt.Format(time.RFC3339),
		EndsAt:      resp.EndsAt.Format(time.RFC3339),
	}
}
