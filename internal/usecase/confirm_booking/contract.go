package confirm_booking

import (
	"context"
	"time"

	"github.com/salonhub/booking-engine/internal/domain"
)

// SessionStore интерфейс хранилища выбора слота
type SessionStore interface {
	Get(ctx context.Context, customerID string) (*domain.PendingSelection, error)
	Delete(ctx context.Context, customerID string) error
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetActiveOverlapping(ctx context.Context, staffID int64, start, end time.Time) ([]*domain.Booking, error)
}

// CatalogRepository интерфейс репозитория справочных данных
type CatalogRepository interface {
	GetSalon(ctx context.Context, id int64) (*domain.Salon, error)
	GetStaffMember(ctx context.Context, id int64) (*domain.StaffMember, error)
	GetService(ctx context.Context, id int64) (*domain.Service, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// CodeGenerator интерфейс генератора кодов бронирования
type CodeGenerator interface {
	Generate() (string, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Sleeper интерфейс задержки между попытками (для тестирования ретраев)
type Sleeper interface {
	Sleep(d time.Duration)
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

// RealSleeper реальная задержка для production
type RealSleeper struct{}

// Sleep блокирует горутину на d
func (s *RealSleeper) Sleep(d time.Duration) {
	time.Sleep(d)
}
