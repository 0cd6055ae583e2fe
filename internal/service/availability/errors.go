package availability

import "errors"

var (
	// ErrSalonNotFound возвращается, когда салон не найден
	ErrSalonNotFound = errors.New("availability: salon not found")

	// ErrInvalidTimezone возвращается при некорректной таймзоне салона в справочнике
	ErrInvalidTimezone = errors.New("availability: invalid salon timezone")

	// ErrInvalidStartTime возвращается при некорректном времени начала слота
	ErrInvalidStartTime = errors.New("availability: invalid start time")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("availability: internal error")
)
