package booking

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"

	"github.com/lib/pq"
)

var (
	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")

	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrTransient помечает ошибки хранилища, которые имеет смысл повторить:
	// обрыв соединения, таймаут, конфликт сериализации, коллизия кода бронирования.
	// Решение о ретрае принимается только по этой метке, не по тексту ошибки.
	ErrTransient = errors.New("booking.repository: transient storage error")
)

// коды ошибок PostgreSQL, которые классифицируются как транзиентные
const (
	pqSerializationFailure = "40001"
	pqDeadlockDetected     = "40P01"
	pqQueryCanceled        = "57014"
	pqTooManyConnections   = "53300"
	pqUniqueViolation      = "23505"
	pqConnectionClass      = "08"
)

// codeUniqueConstraint имя уникального индекса кода бронирования.
// Коллизия кода - транзиентная ошибка: на следующей попытке транзакции
// будет сгенерирован новый код.
const codeUniqueConstraint = "bookings_code_key"

// IsTransient сообщает, разрешает ли ошибка хранилища повторную попытку.
// Принимает как ошибки, уже помеченные ErrTransient, так и сырые ошибки
// драйвера: конфликт сериализации может всплыть на этапе коммита,
// минуя репозиторий.
func IsTransient(err error) bool {
	return errors.Is(classify(err), ErrTransient)
}

// classify оборачивает ошибку хранилища в ErrTransient, если она
// принадлежит классу ошибок, разрешающихся повтором. Остальные ошибки
// возвращаются как есть.
func classify(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, driver.ErrBadConn) {
		return fmt.Errorf("%w: %v", ErrTransient, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return fmt.Errorf("%w: %v", ErrTransient, err)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		code := string(pqErr.Code)
		switch {
		case code == pqSerializationFailure,
			code == pqDeadlockDetected,
			code == pqQueryCanceled,
			code == pqTooManyConnections:
			return fmt.Errorf("%w: %v", ErrTransient, err)
		case code == pqUniqueViolation && pqErr.Constraint == codeUniqueConstraint:
			return fmt.Errorf("%w: %v", ErrTransient, err)
		case pqErr.Code.Class() == pqConnectionClass:
			return fmt.Errorf("%w: %v", ErrTransient, err)
		}
	}

	return err
}
