package confirm_booking

import (
	"time"

	confirmBooking "github.com/salonhub/booking-engine/internal/usecase/confirm_booking"
)

// ConfirmBookingResponse HTTP response model.
// При success=false поле errorKind сообщает диалоговому пайплайну,
// как продолжить диалог: предложить выбрать время заново, показать
// альтернативные слоты или попросить повторить позже.
type ConfirmBookingResponse struct {
	Success     bool   `json:"success"`
	BookingCode string `json:"bookingCode,omitempty"`
	Message     string `json:"message"`
	ErrorKind   string `json:"errorKind,omitempty"`
	StartsAt    string `json:"startsAt,omitempty"`
	EndsAt      string `json:"endsAt,omitempty"`
}

// errorKind значения для диалогового пайплайна
const (
	kindNoActiveSession = "no_active_session"
	kindSlotInPast      = "slot_in_past"
	kindSlotTaken       = "slot_no_longer_available"
	kindTransient       = "transient_failure"
)

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *confirmBooking.Response) *ConfirmBookingResponse {
	return &ConfirmBookingResponse{
		Success:     true,
		BookingCode: resp.Code,
		Message:     resp.Message,
		StartsAt:    resp.StartsAt.Format(time.RFC3339),
		EndsAt:      resp.EndsAt.Format(time.RFC3339),
	}
}
