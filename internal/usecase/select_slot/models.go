package select_slot

import (
	"time"

	"github.com/salonhub/booking-engine/pkg/types"
)

// Request модель запроса на выбор слота.
// Приходит из диалогового пайплайна уже нормализованной: намерение клиента
// разобрано в конкретный кортеж (мастер, услуга, дата, время).
type Request struct {
	CustomerID    string           // идентификатор клиента в чате
	CustomerPhone *string          // контактный телефон, если пайплайн его собрал
	SalonID       int64            // ID салона
	StaffID       int64            // ID мастера
	ServiceID     int64            // ID услуги
	Date          time.Time        // дата бронирования (без времени)
	StartTime     types.TimeString // время начала слота, например "15:00"
	Locale        string           // локаль клиента ("ru", "en")
}

// Response модель ответа на выбор слота
type Response struct {
	Available bool   // доступен ли слот
	Reason    string // причина недоступности (пусто при Available=true)
}
