package availability

import (
	"time"

	"github.com/salonhub/booking-engine/internal/domain"
	"github.com/salonhub/booking-engine/pkg/types"
)

// Reason причина недоступности слота
type Reason string

const (
	// ReasonInPast слот начинается в прошлом (по локальному времени салона)
	ReasonInPast Reason = "slot_in_past"

	// ReasonTaken интервал слота пересекается с активным бронированием мастера
	ReasonTaken Reason = "slot_taken"

	// ReasonStaffUnavailable мастер не найден или неактивен
	ReasonStaffUnavailable Reason = "staff_unavailable"

	// ReasonServiceUnavailable услуга не найдена или неактивна
	ReasonServiceUnavailable Reason = "service_unavailable"
)

// Query запрос проверки доступности слота
type Query struct {
	SalonID   int64
	StaffID   int64
	ServiceID int64
	Date      time.Time
	StartTime types.TimeString
}

// Result результат проверки доступности слота.
// При Available=true заполнены вычисленные границы интервала и справочные
// данные - вызывающая сторона переиспользует их, не ходя в каталог повторно.
type Result struct {
	Available bool
	Reason    Reason

	Start   time.Time
	End     time.Time
	Staff   *domain.StaffMember
	Service *domain.Service
	Salon   *domain.Salon
}
