package catalog

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"

	"github.com/lib/pq"
)

var (
	// ErrSalonNotFound возвращается, когда салон не найден
	ErrSalonNotFound = errors.New("catalog.repository: salon not found")

	// ErrStaffNotFound возвращается, когда мастер не найден
	ErrStaffNotFound = errors.New("catalog.repository: staff member not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("catalog.repository: service not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("catalog.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("catalog.repository: failed to execute query")

	// ErrTransient помечает ошибки хранилища, которые имеет смысл повторить:
	// обрыв соединения, таймаут, конфликт сериализации. Справочник читается
	// и внутри попытки подтверждения - без метки транзиентная ошибка каталога
	// сорвала бы ретраи confirm_booking.
	ErrTransient = errors.New("catalog.repository: transient storage error")
)

// коды ошибок PostgreSQL, которые классифицируются как транзиентные
const (
	pqSerializationFailure = "40001"
	pqDeadlockDetected     = "40P01"
	pqQueryCanceled        = "57014"
	pqTooManyConnections   = "53300"
	pqConnectionClass      = "08"
)

// IsTransient сообщает, разрешает ли ошибка хранилища повторную попытку.
// Принимает как ошибки, уже помеченные ErrTransient, так и сырые ошибки драйвера.
func IsTransient(err error) bool {
	return errors.Is(classify(err), ErrTransient)
}

// classify оборачивает ошибку хранилища в ErrTransient, если она
// принадлежит классу ошибок, разрешающихся повтором
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
		case pqErr.Code.Class() == pqConnectionClass:
			return fmt.Errorf("%w: %v", ErrTransient, err)
		}
	}

	return err
}
