package confirm_booking

import (
	"context"

	confirmBooking "github.com/salonhub/booking-engine/internal/usecase/confirm_booking"
)

// ConfirmBookingUseCase интерфейс use case подтверждения бронирования
type ConfirmBookingUseCase interface {
	Execute(ctx context.Context, req *confirmBooking.Request) (*confirmBooking.Response, error)
}

// BookingMetrics интерфейс счетчиков исходов бронирования
type BookingMetrics interface {
	IncConfirmed()
	IncConflict()
	IncFailure()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// NopMetrics заглушка метрик, когда сбор метрик выключен
type NopMetrics struct{}

func (NopMetrics) IncConfirmed() {}
func (NopMetrics) IncConflict()  {}
func (NopMetrics) IncFailure()   {}
