package usagetracker

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("usagetracker client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("usagetracker client: invalid response")

	// ErrUnavailable возвращается при недоступности сервиса учёта квот.
	// Для квот graceful degradation не применяется: если квоту проверить
	// нельзя, новые бронирования не создаются (fail-closed).
	ErrUnavailable = errors.New("usagetracker client: service unavailable")
)
