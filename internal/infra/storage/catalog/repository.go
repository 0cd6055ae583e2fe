package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/salonhub/booking-engine/internal/domain"
	"github.com/salonhub/booking-engine/pkg/psqlbuilder"
	"github.com/salonhub/booking-engine/pkg/txmanager"
)

// Repository репозиторий справочных данных: салоны, мастера, услуги.
// Ядро бронирования читает справочник, но никогда не изменяет его -
// управление каталогом живет в отдельном сервисе.
type Repository struct {
	db txmanager.DBExecutor
}

// NewRepository создает новый экземпляр репозитория справочника
func NewRepository(db txmanager.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetSalon получает салон по ID (включая таймзону для расчёта локального времени)
func (r *Repository) GetSalon(ctx context.Context, id int64) (*domain.Salon, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "timezone").
		From("salons").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetSalon - build select query: %v", ErrBuildQuery, err)
	}

	var salon domain.Salon
	err = executor.QueryRowContext(ctx, query, args...).Scan(&salon.ID, &salon.Name, &salon.Timezone)

	if err == sql.ErrNoRows {
		return nil, ErrSalonNotFound
	}
	if err != nil {
		if IsTransient(err) {
			return nil, fmt.Errorf("%w: GetSalon - scan salon: %v", ErrTransient, err)
		}
		return nil, fmt.Errorf("%w: GetSalon - scan salon: %v", ErrExecQuery, err)
	}

	return &salon, nil
}

// GetStaffMember получает мастера по ID
func (r *Repository) GetStaffMember(ctx context.Context, id int64) (*domain.StaffMember, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "salon_id", "display_name", "active").
		From("staff_members").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetStaffMember - build select query: %v", ErrBuildQuery, err)
	}

	var staff domain.StaffMember
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&staff.ID,
		&staff.SalonID,
		&staff.DisplayName,
		&staff.Active,
	)

	if err == sql.ErrNoRows {
		return nil, ErrStaffNotFound
	}
	if err != nil {
		if IsTransient(err) {
			return nil, fmt.Errorf("%w: GetStaffMember - scan staff member: %v", ErrTransient, err)
		}
		return nil, fmt.Errorf("%w: GetStaffMember - scan staff member: %v", ErrExecQuery, err)
	}

	return &staff, nil
}

// GetService получает услугу по ID
func (r *Repository) GetService(ctx context.Context, id int64) (*domain.Service, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "salon_id", "name", "duration_minutes", "price", "active").
		From("services").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetService - build select query: %v", ErrBuildQuery, err)
	}

	var service domain.Service
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&service.ID,
		&service.SalonID,
		&service.Name,
		&service.DurationMinutes,
		&service.Price,
		&service.Active,
	)

	if err == sql.ErrNoRows {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		if IsTransient(err) {
			return nil, fmt.Errorf("%w: GetService - scan service: %v", ErrTransient, err)
		}
		return nil, fmt.Errorf("%w: GetService - scan service: %v", ErrExecQuery, err)
	}

	return &service, nil
}
