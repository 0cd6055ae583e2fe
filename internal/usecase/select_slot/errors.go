package select_slot

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("select_slot: invalid input data")

	// ErrSalonNotFound возвращается, когда салон не найден
	ErrSalonNotFound = errors.New("select_slot: salon not found")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("select_slot: internal error")
)
