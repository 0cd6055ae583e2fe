package select_slot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/salonhub/booking-engine/internal/domain"
	"github.com/salonhub/booking-engine/internal/service/availability"
)

// UseCase use case выбора слота: консультативная проверка доступности
// и сохранение выбора клиента в хранилище сессий с TTL.
type UseCase struct {
	sessions     SessionStore
	checker      AvailabilityChecker
	selectionTTL time.Duration
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(sessions SessionStore, checker AvailabilityChecker, selectionTTL time.Duration, logger Logger) *UseCase {
	return &UseCase{
		sessions:     sessions,
		checker:      checker,
		selectionTTL: selectionTTL,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет выбор слота.
// Проверка здесь консультативная: окно гонки между выбором и подтверждением
// закрывается авторитетной перепроверкой внутри транзакции confirm_booking.
// Повторный выбор того же клиента перезаписывает предыдущий (last write wins).
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("SelectSlot: customer=%s, salon=%d, staff=%d, service=%d, date=%s, time=%s",
		req.CustomerID, req.SalonID, req.StaffID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("SelectSlot: validation failed: %v", err)
		return nil, err
	}

	result, err := uc.checker.Check(ctx, availability.Query{
		SalonID:   req.SalonID,
		StaffID:   req.StaffID,
		ServiceID: req.ServiceID,
		Date:      req.Date,
		StartTime: req.StartTime,
	})
	if err != nil {
		if errors.Is(err, availability.ErrSalonNotFound) {
			uc.logger.Warn("SelectSlot: salon id=%d not found", req.SalonID)
			return nil, ErrSalonNotFound
		}
		uc.logger.Error("SelectSlot: availability check failed: %v", err)
		return nil, fmt.Errorf("%w: availability check: %v", ErrInternal, err)
	}

	if !result.Available {
		uc.logger.Info("SelectSlot: slot unavailable, customer=%s, reason=%s", req.CustomerID, result.Reason)
		return &Response{Available: false, Reason: string(result.Reason)}, nil
	}

	selection := &domain.PendingSelection{
		CustomerID:    req.CustomerID,
		CustomerPhone: req.CustomerPhone,
		SalonID:       req.SalonID,
		StaffID:       req.StaffID,
		ServiceID:     req.ServiceID,
		Date:          req.Date,
		StartTime:     req.StartTime,
		Locale:        normalizeLocale(req.Locale),
		CreatedAt:     uc.timeProvider.Now(),
	}

	if err := uc.sessions.Put(ctx, selection, uc.selectionTTL); err != nil {
		uc.logger.Error("SelectSlot: failed to store selection for customer=%s: %v", req.CustomerID, err)
		return nil, fmt.Errorf("%w: store selection: %v", ErrInternal, err)
	}

	uc.logger.Info("SelectSlot: selection stored, customer=%s, ttl=%s", req.CustomerID, uc.selectionTTL)
	return &Response{Available: true}, nil
}
