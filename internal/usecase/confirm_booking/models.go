package confirm_booking

import "time"

// Request модель запроса на подтверждение бронирования.
// Клиент идентифицируется по идентификатору чата - все данные слота
// берутся из его сохранённого выбора.
type Request struct {
	CustomerID string
}

// Response модель ответа с подтверждённым бронированием
type Response struct {
	BookingID   int64
	Code        string    // короткий код бронирования для клиента
	SalonID     int64
	StaffID     int64
	ServiceID   int64
	StartsAt    time.Time // в локальном времени салона
	EndsAt      time.Time
	ServiceName string
	StaffName   string
	Message     string // готовый текст подтверждения в локали клиента
}
