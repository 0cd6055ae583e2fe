package confirm_booking

import "errors"

// Ошибки-исходы подтверждения бронирования.
// Бизнес-исходы (ErrNoActiveSession, ErrSlotInPast, ErrSlotTaken) не ретраятся
// и возвращаются сразу. Ретраится только ErrTransient - и только внутри usecase,
// наружу он выходит после исчерпания попыток.
var (
	// ErrNoActiveSession возвращается, когда у клиента нет сохранённого выбора
	// слота или он истёк - клиенту нужно выбрать время заново
	ErrNoActiveSession = errors.New("confirm_booking: no active slot selection")

	// ErrSlotInPast возвращается, когда выбранный слот уже начался:
	// между выбором и подтверждением время могло уйти
	ErrSlotInPast = errors.New("confirm_booking: slot start is in the past")

	// ErrSlotTaken возвращается при конфликте на авторитетной проверке внутри
	// транзакции: слот успел занять другой клиент. Это корректный исход гонки,
	// а не сбой - никогда не ретраится.
	ErrSlotTaken = errors.New("confirm_booking: slot is no longer available")

	// ErrTransient возвращается после исчерпания попыток на транзиентных
	// ошибках хранилища
	ErrTransient = errors.New("confirm_booking: transient failure, retries exhausted")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("confirm_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("confirm_booking: internal error")
)
