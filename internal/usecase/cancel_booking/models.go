package cancel_booking

import "time"

// Request модель запроса на отмену бронирования.
// Клиент может отменить только собственное бронирование - владение
// проверяется по идентификатору клиента из диалогового пайплайна.
type Request struct {
	CustomerID string
	Code       string // код бронирования из подтверждения
}

// Response модель ответа с отменённым бронированием
type Response struct {
	Code        string
	StartsAt    time.Time
	EndsAt      time.Time
	ServiceName string
	StaffName   string
}
