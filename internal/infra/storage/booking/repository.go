package booking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/salonhub/booking-engine/internal/domain"
	"github.com/salonhub/booking-engine/pkg/psqlbuilder"
	"github.com/salonhub/booking-engine/pkg/txmanager"
)

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование.
// Если в контексте есть активная транзакция, вставка выполняется внутри неё -
// так confirm_booking гарантирует атомарность проверки занятости и вставки.
// Ошибки хранилища классифицируются: обрыв соединения, конфликт сериализации
// и коллизия уникального кода помечаются ErrTransient.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"salon_id",
			"staff_id",
			"service_id",
			"customer_id",
			"customer_phone",
			"starts_at",
			"ends_at",
			"status",
			"code",
			"service_name",
			"staff_name",
		).
		Values(
			booking.SalonID,
			booking.StaffID,
			booking.ServiceID,
			booking.CustomerID,
			booking.CustomerPhone,
			booking.StartsAt,
			booking.EndsAt,
			booking.Status,
			booking.Code,
			booking.ServiceName,
			booking.StaffName,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if tErr := classify(err); IsTransient(tErr) {
			return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrTransient, err)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetActiveOverlapping возвращает активные бронирования мастера,
// пересекающиеся с интервалом [start, end).
//
// Внутри транзакции добавляет FOR UPDATE - это авторитетная проверка занятости
// слота в confirm_booking: конкурирующая транзакция либо увидит вставленную
// строку, либо заблокируется до коммита первой.
// Вне транзакции используется как быстрая консультативная проверка при выборе слота.
func (r *Repository) GetActiveOverlapping(ctx context.Context, staffID int64, start, end time.Time) ([]*domain.Booking, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"salon_id",
		"staff_id",
		"service_id",
		"customer_id",
		"customer_phone",
		"starts_at",
		"ends_at",
		"status",
		"code",
		"service_name",
		"staff_name",
		"created_at",
		"updated_at",
	).
		From("bookings").
		Where(squirrel.Eq{"staff_id": staffID}).
		Where(squirrel.Lt{"starts_at": end}).
		Where(squirrel.Gt{"ends_at": start}).
		Where(squirrel.Eq{"status": activeStatusStrings()}).
		OrderBy("starts_at ASC")

	if txmanager.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		if tErr := classify(err); IsTransient(tErr) {
			return nil, fmt.Errorf("%w: GetActiveOverlapping - execute query: %v", ErrTransient, err)
		}
		return nil, fmt.Errorf("%w: GetActiveOverlapping - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// GetByCode возвращает бронирование по коду.
// Внутри транзакции добавляет FOR UPDATE: cancel_booking блокирует строку
// на время проверки владельца и смены статуса.
func (r *Repository) GetByCode(ctx context.Context, code string) (*domain.Booking, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"salon_id",
		"staff_id",
		"service_id",
		"customer_id",
		"customer_phone",
		"starts_at",
		"ends_at",
		"status",
		"code",
		"service_name",
		"staff_name",
		"created_at",
		"updated_at",
	).
		From("bookings").
		Where(squirrel.Eq{"code": code})

	if txmanager.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCode - build select query: %v", ErrBuildQuery, err)
	}

	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&booking.SalonID,
		&booking.StaffID,
		&booking.ServiceID,
		&booking.CustomerID,
		&booking.CustomerPhone,
		&booking.StartsAt,
		&booking.EndsAt,
		&booking.Status,
		&booking.Code,
		&booking.ServiceName,
		&booking.StaffName,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		if tErr := classify(err); IsTransient(tErr) {
			return nil, fmt.Errorf("%w: GetByCode - scan booking: %v", ErrTransient, err)
		}
		return nil, fmt.Errorf("%w: GetByCode - scan booking: %v", ErrScanRow, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// CancelByCode переводит активное бронирование в статус cancelled.
// Отменённое бронирование освобождает слот: оно не участвует в проверке
// занятости. Возвращает ErrBookingNotFound, если активной строки с таким
// кодом нет - бронирование не существует или уже отменено.
func (r *Repository) CancelByCode(ctx context.Context, code string) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", string(domain.StatusCancelled)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"code": code}).
		Where(squirrel.Eq{"status": activeStatusStrings()}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: CancelByCode - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if tErr := classify(err); IsTransient(tErr) {
			return fmt.Errorf("%w: CancelByCode - execute update: %v", ErrTransient, err)
		}
		return fmt.Errorf("%w: CancelByCode - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: CancelByCode - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		var booking domain.Booking
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&booking.ID,
			&booking.SalonID,
			&booking.StaffID,
			&booking.ServiceID,
			&booking.CustomerID,
			&booking.CustomerPhone,
			&booking.StartsAt,
			&booking.EndsAt,
			&booking.Status,
			&booking.Code,
			&booking.ServiceName,
			&booking.StaffName,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}

		booking.CreatedAt = createdAt.Time
		booking.UpdatedAt = updatedAt.Time

		bookings = append(bookings, &booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

func activeStatusStrings() []string {
	statuses := make([]string, len(domain.ActiveStatuses))
	for i, s := range domain.ActiveStatuses {
		statuses[i] = string(s)
	}
	return statuses
}
