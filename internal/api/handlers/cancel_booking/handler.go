package cancel_booking

import (
	"errors"
	"net/http"

	"github.com/salonhub/booking-engine/internal/api/handlers"
	"github.com/salonhub/booking-engine/internal/api/middleware"
	cancelBooking "github.com/salonhub/booking-engine/internal/usecase/cancel_booking"
)

const (
	msgCancelled          = "запись отменена"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgBookingNotFound    = "запись с таким кодом не найдена"
	msgAlreadyCancelled   = "эта запись уже отменена"
)

type Handler struct {
	useCase CancelBookingUseCase
	logger  Logger
}

func NewHandler(useCase CancelBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	customerID := middleware.CustomerID(r.Context())

	var req CancelBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &cancelBooking.Request{
		CustomerID: customerID,
		Code:       req.BookingCode,
	})
	if err != nil {
		switch {
		case errors.Is(err, cancelBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings/cancel - Invalid input: customer_id=%s, error=%v", customerID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, cancelBooking.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/cancel - Booking not found: customer_id=%s, code=%s", customerID, req.BookingCode)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, cancelBooking.ErrAlreadyCancelled):
			h.logger.Warn("POST /bookings/cancel - Already cancelled: customer_id=%s, code=%s", customerID, req.BookingCode)
			handlers.RespondError(w, http.StatusConflict, msgAlreadyCancelled)

		default:
			h.logger.Error("POST /bookings/cancel - Failed: customer_id=%s, error=%v", customerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/cancel - Booking cancelled: customer_id=%s, code=%s", customerID, result.Code)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
