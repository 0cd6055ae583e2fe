package select_slot

import (
	"context"
	"time"

	"github.com/salonhub/booking-engine/internal/domain"
	"github.com/salonhub/booking-engine/internal/service/availability"
)

// SessionStore интерфейс хранилища выбора слота
type SessionStore interface {
	Put(ctx context.Context, selection *domain.PendingSelection, ttl time.Duration) error
}

// AvailabilityChecker интерфейс сервиса проверки доступности слота
type AvailabilityChecker interface {
	Check(ctx context.Context, q availability.Query) (*availability.Result, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
