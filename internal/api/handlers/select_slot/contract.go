package select_slot

import (
	"context"

	selectSlot "github.com/salonhub/booking-engine/internal/usecase/select_slot"
)

// SelectSlotUseCase интерфейс use case выбора слота
type SelectSlotUseCase interface {
	Execute(ctx context.Context, req *selectSlot.Request) (*selectSlot.Response, error)
}

// UsageTrackerClient интерфейс клиента сервиса учёта квот
type UsageTrackerClient interface {
	HasQuota(ctx context.Context, salonID int64) (bool, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
