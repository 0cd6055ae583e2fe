package cancel_booking

import (
	"context"
	"errors"
	"fmt"

	bookingRepo "github.com/salonhub/booking-engine/internal/infra/storage/booking"
)

// UseCase use case отмены бронирования.
//
// Проверка владельца и смена статуса выполняются в одной транзакции:
// GetByCode блокирует строку (FOR UPDATE), конкурирующая отмена того же
// кода получит ErrAlreadyCancelled, а не молчаливый повтор.
type UseCase struct {
	bookingRepo BookingRepository
	txManager   TransactionManager
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, txManager TransactionManager, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// Execute выполняет отмену бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.CustomerID == "" {
		return nil, fmt.Errorf("%w: customerID is required", ErrInvalidInput)
	}
	if req.Code == "" {
		return nil, fmt.Errorf("%w: booking code is required", ErrInvalidInput)
	}

	uc.logger.Info("CancelBooking: customer=%s, code=%s", req.CustomerID, req.Code)

	var resp *Response

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := uc.bookingRepo.GetByCode(txCtx, req.Code)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("get booking by code: %w", err)
		}

		// Чужое бронирование неотличимо от несуществующего
		if booking.CustomerID != req.CustomerID {
			uc.logger.Warn("CancelBooking: code=%s belongs to another customer, requested by %s", req.Code, req.CustomerID)
			return ErrBookingNotFound
		}

		if !booking.IsActive() {
			return ErrAlreadyCancelled
		}

		if err := uc.bookingRepo.CancelByCode(txCtx, req.Code); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrAlreadyCancelled
			}
			return fmt.Errorf("cancel booking: %w", err)
		}

		resp = &Response{
			Code:        booking.Code,
			StartsAt:    booking.StartsAt,
			EndsAt:      booking.EndsAt,
			ServiceName: booking.ServiceName,
			StaffName:   booking.StaffName,
		}
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrBookingNotFound) || errors.Is(err, ErrAlreadyCancelled) {
			uc.logger.Info("CancelBooking: customer=%s, code=%s, outcome: %v", req.CustomerID, req.Code, err)
			return nil, err
		}
		uc.logger.Error("CancelBooking: failed for customer=%s, code=%s: %v", req.CustomerID, req.Code, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	uc.logger.Info("CancelBooking: booking cancelled, customer=%s, code=%s", req.CustomerID, req.Code)
	return resp, nil
}
