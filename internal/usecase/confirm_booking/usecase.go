package confirm_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/salonhub/booking-engine/internal/confirmation"
	"github.com/salonhub/booking-engine/internal/domain"
	"github.com/salonhub/booking-engine/internal/infra/sessionstore"
	bookingRepo "github.com/salonhub/booking-engine/internal/infra/storage/booking"
	catalogRepo "github.com/salonhub/booking-engine/internal/infra/storage/catalog"
)

// UseCase use case подтверждения бронирования.
//
// Берет сохранённый выбор слота клиента и фиксирует бронирование в одной
// сериализуемой транзакции: авторитетная перепроверка занятости (FOR UPDATE)
// и вставка строки. Из N конкурентных подтверждений пересекающихся слотов
// одного мастера закоммитится ровно одно, остальные получат ErrSlotTaken.
//
// Транзиентные ошибки хранилища ретраятся с экспоненциальным backoff,
// бизнес-исходы - никогда.
type UseCase struct {
	sessions     SessionStore
	bookingRepo  BookingRepository
	catalogRepo  CatalogRepository
	txManager    TransactionManager
	codeGen      CodeGenerator
	timeProvider TimeProvider
	sleeper      Sleeper
	logger       Logger

	retryAttempts int           // всего попыток транзакции, включая первую
	baseDelay     time.Duration // задержка перед второй попыткой, далее удваивается
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	sessions SessionStore,
	bookingRepo BookingRepository,
	catalogRepo CatalogRepository,
	txManager TransactionManager,
	codeGen CodeGenerator,
	retryAttempts int,
	baseDelay time.Duration,
	logger Logger,
) *UseCase {
	return &UseCase{
		sessions:      sessions,
		bookingRepo:   bookingRepo,
		catalogRepo:   catalogRepo,
		txManager:     txManager,
		codeGen:       codeGen,
		timeProvider:  &RealTimeProvider{},
		sleeper:       &RealSleeper{},
		logger:        logger,
		retryAttempts: retryAttempts,
		baseDelay:     baseDelay,
	}
}

// Execute выполняет подтверждение бронирования с ретраями.
// Каждая попытка перечитывает выбор клиента и генерирует новый код:
// коллизия кода на уникальном индексе классифицируется как транзиентная
// ошибка, и повторная попытка пройдет с другим кодом.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.CustomerID == "" {
		return nil, fmt.Errorf("%w: customerID is required", ErrInvalidInput)
	}

	uc.logger.Info("ConfirmBooking: customer=%s", req.CustomerID)

	var lastErr error

	for attempt := 1; attempt <= uc.retryAttempts; attempt++ {
		if attempt > 1 {
			// 100ms перед второй попыткой, 200ms перед третьей
			delay := uc.baseDelay << (attempt - 2)
			uc.logger.Warn("ConfirmBooking: transient failure, retrying in %s (attempt %d/%d): %v",
				delay, attempt, uc.retryAttempts, lastErr)
			uc.sleeper.Sleep(delay)
		}

		resp, err := uc.attempt(ctx, req.CustomerID)
		if err == nil {
			uc.logger.Info("ConfirmBooking: booking confirmed, customer=%s, code=%s", req.CustomerID, resp.Code)
			return resp, nil
		}

		// Бизнес-исходы возвращаются сразу, без ретраев
		if errors.Is(err, ErrNoActiveSession) || errors.Is(err, ErrSlotInPast) || errors.Is(err, ErrSlotTaken) {
			uc.logger.Info("ConfirmBooking: customer=%s, outcome: %v", req.CustomerID, err)
			return nil, err
		}

		if !isRetryable(err) {
			uc.logger.Error("ConfirmBooking: fatal error for customer=%s: %v", req.CustomerID, err)
			return nil, err
		}

		lastErr = err
	}

	uc.logger.Error("ConfirmBooking: retries exhausted for customer=%s: %v", req.CustomerID, lastErr)
	return nil, fmt.Errorf("%w: %v", ErrTransient, lastErr)
}

// attempt одна попытка подтверждения: чтение выбора, проверка "не в прошлом",
// транзакция с перепроверкой занятости и вставкой, удаление выбора.
func (uc *UseCase) attempt(ctx context.Context, customerID string) (*Response, error) {
	// 1. Читаем сохранённый выбор клиента
	selection, err := uc.sessions.Get(ctx, customerID)
	if err != nil {
		if errors.Is(err, sessionstore.ErrNoActiveSession) {
			return nil, ErrNoActiveSession
		}
		return nil, fmt.Errorf("read selection: %w", err)
	}

	// 2. Справочные данные: таймзона салона, длительность услуги, имена
	salon, err := uc.catalogRepo.GetSalon(ctx, selection.SalonID)
	if err != nil {
		return nil, fmt.Errorf("get salon: %w", err)
	}

	loc, err := salon.Location()
	if err != nil {
		return nil, fmt.Errorf("%w: salon id=%d timezone: %v", ErrInternal, salon.ID, err)
	}

	staff, err := uc.catalogRepo.GetStaffMember(ctx, selection.StaffID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrStaffNotFound) {
			// Мастер исчез между выбором и подтверждением - слот недоступен
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("get staff member: %w", err)
	}

	service, err := uc.catalogRepo.GetService(ctx, selection.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("get service: %w", err)
	}

	if !staff.Active || !service.Active {
		return nil, ErrSlotTaken
	}

	start, err := selection.StartInstant(loc)
	if err != nil {
		return nil, fmt.Errorf("%w: compute slot start: %v", ErrInternal, err)
	}
	end := start.Add(service.Duration())

	// 3. Перепроверка "не в прошлом": между выбором и подтверждением
	//    слот мог уйти в прошлое
	if start.Before(uc.timeProvider.Now().In(loc)) {
		return nil, ErrSlotInPast
	}

	code, err := uc.codeGen.Generate()
	if err != nil {
		return nil, fmt.Errorf("%w: generate booking code: %v", ErrInternal, err)
	}

	booking := &domain.Booking{
		SalonID:       selection.SalonID,
		StaffID:       selection.StaffID,
		ServiceID:     selection.ServiceID,
		CustomerID:    customerID,
		CustomerPhone: selection.CustomerPhone,
		StartsAt:      start,
		EndsAt:        end,
		Status:        domain.StatusConfirmed,
		Code:          code,
		ServiceName:   service.Name,
		StaffName:     staff.DisplayName,
	}

	// 4. Сериализуемая транзакция: авторитетная перепроверка + вставка.
	//    Конкурирующее подтверждение либо увидит нашу строку, либо мы - его.
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		overlapping, err := uc.bookingRepo.GetActiveOverlapping(txCtx, selection.StaffID, start, end)
		if err != nil {
			return fmt.Errorf("authoritative overlap check: %w", err)
		}

		if len(overlapping) > 0 {
			return ErrSlotTaken
		}

		if _, err := uc.bookingRepo.Create(txCtx, booking); err != nil {
			return fmt.Errorf("insert booking: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	// 5. После коммита выбор клиента потреблён. Ошибка удаления не критична:
	//    ключ истечёт по TTL, а повторное подтверждение упрётся в занятый слот.
	if err := uc.sessions.Delete(ctx, customerID); err != nil {
		uc.logger.Warn("ConfirmBooking: failed to delete selection for customer=%s: %v", customerID, err)
	}

	return &Response{
		BookingID:   booking.ID,
		Code:        booking.Code,
		SalonID:     booking.SalonID,
		StaffID:     booking.StaffID,
		ServiceID:   booking.ServiceID,
		StartsAt:    start,
		EndsAt:      end,
		ServiceName: booking.ServiceName,
		StaffName:   booking.StaffName,
		Message:     confirmation.Format(booking, selection.Locale),
	}, nil
}

// isRetryable сообщает, разрешает ли ошибка повторную попытку.
// Решение принимается по классификации слоя хранения, не по тексту ошибки.
func isRetryable(err error) bool {
	return bookingRepo.IsTransient(err) || catalogRepo.IsTransient(err) || errors.Is(err, sessionstore.ErrStore)
}
