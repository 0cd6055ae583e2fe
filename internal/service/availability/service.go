package availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/salonhub/booking-engine/internal/domain"
	catalogRepo "github.com/salonhub/booking-engine/internal/infra/storage/catalog"
)

// Service проверка доступности слота.
//
// Вне транзакции это консультативная проверка: между ней и подтверждением
// слот может занять другой клиент. Авторитетная проверка выполняется ещё раз
// внутри сериализуемой транзакции в confirm_booking - тем же методом Check,
// которому через контекст передаётся активная транзакция.
type Service struct {
	bookingRepo  BookingRepository
	catalogRepo  CatalogRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый сервис проверки доступности
func NewService(bookingRepo BookingRepository, catalogRepo CatalogRepository, logger Logger) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		catalogRepo:  catalogRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Check проверяет доступность слота. Порядок проверок:
//  1. мастер и услуга существуют и активны, принадлежат салону;
//  2. начало слота не в прошлом по локальному времени салона;
//  3. интервал [start, end) не пересекается с активными бронированиями мастера.
func (s *Service) Check(ctx context.Context, q Query) (*Result, error) {
	salon, err := s.catalogRepo.GetSalon(ctx, q.SalonID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrSalonNotFound) {
			return nil, ErrSalonNotFound
		}
		return nil, fmt.Errorf("%w: failed to get salon: %v", ErrInternal, err)
	}

	loc, err := salon.Location()
	if err != nil {
		return nil, fmt.Errorf("%w: salon id=%d timezone %q: %v", ErrInvalidTimezone, salon.ID, salon.Timezone, err)
	}

	staff, err := s.catalogRepo.GetStaffMember(ctx, q.StaffID)
	if err != nil && !errors.Is(err, catalogRepo.ErrStaffNotFound) {
		return nil, fmt.Errorf("%w: failed to get staff member: %v", ErrInternal, err)
	}
	if staff == nil || !staff.Active || staff.SalonID != q.SalonID {
		s.logger.Warn("Availability: staff id=%d unavailable for salon id=%d", q.StaffID, q.SalonID)
		return &Result{Available: false, Reason: ReasonStaffUnavailable, Salon: salon}, nil
	}

	service, err := s.catalogRepo.GetService(ctx, q.ServiceID)
	if err != nil && !errors.Is(err, catalogRepo.ErrServiceNotFound) {
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if service == nil || !service.Active || service.SalonID != q.SalonID {
		s.logger.Warn("Availability: service id=%d unavailable for salon id=%d", q.ServiceID, q.SalonID)
		return &Result{Available: false, Reason: ReasonServiceUnavailable, Salon: salon}, nil
	}

	start, err := q.StartTime.OnDate(q.Date, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidStartTime, err)
	}
	end := start.Add(service.Duration())

	// Проверка "не в прошлом" - по часам салона, без обращения к БД
	now := s.timeProvider.Now().In(loc)
	if start.Before(now) {
		s.logger.Info("Availability: slot %s is in the past for salon id=%d", start.Format(domain.DateFormat+" "+domain.TimeFormat), q.SalonID)
		return &Result{Available: false, Reason: ReasonInPast, Start: start, End: end, Staff: staff, Service: service, Salon: salon}, nil
	}

	overlapping, err := s.bookingRepo.GetActiveOverlapping(ctx, q.StaffID, start, end)
	if err != nil {
		return nil, err
	}

	if len(overlapping) > 0 {
		s.logger.Info("Availability: slot taken, staff=%d, start=%s, overlapping=%d",
			q.StaffID, start.Format(domain.TimeFormat), len(overlapping))
		return &Result{Available: false, Reason: ReasonTaken, Start: start, End: end, Staff: staff, Service: service, Salon: salon}, nil
	}

	return &Result{Available: true, Start: start, End: end, Staff: staff, Service: service, Salon: salon}, nil
}
