package confirm_booking

import (
	"errors"
	"net/http"

	"github.com/salonhub/booking-engine/internal/api/handlers"
	"github.com/salonhub/booking-engine/internal/api/middleware"
	confirmBooking "github.com/salonhub/booking-engine/internal/usecase/confirm_booking"
)

const (
	msgNoActiveSession = "время выбора истекло, пожалуйста, выберите время заново"
	msgSlotInPast      = "выбранное время уже прошло, пожалуйста, выберите другое"
	msgSlotTaken       = "это время только что заняли, пожалуйста, выберите другое"
	msgTransient       = "не удалось подтвердить запись, попробуйте ещё раз"
)

type Handler struct {
	useCase ConfirmBookingUseCase
	metrics BookingMetrics
	logger  Logger
}

func NewHandler(useCase ConfirmBookingUseCase, metrics BookingMetrics, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		metrics: metrics,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/confirm
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	customerID := middleware.CustomerID(r.Context())

	result, err := h.useCase.Execute(r.Context(), &confirmBooking.Request{CustomerID: customerID})
	if err != nil {
		switch {
		case errors.Is(err, confirmBooking.ErrNoActiveSession):
			h.logger.Warn("POST /bookings/confirm - No active session: customer_id=%s", customerID)
			handlers.RespondJSON(w, http.StatusNotFound, &ConfirmBookingResponse{
				Success:   false,
				Message:   msgNoActiveSession,
				ErrorKind: kindNoActiveSession,
			})

		case errors.Is(err, confirmBooking.ErrSlotInPast):
			h.logger.Warn("POST /bookings/confirm - Slot in past: customer_id=%s", customerID)
			handlers.RespondJSON(w, http.StatusBadRequest, &ConfirmBookingResponse{
				Success:   false,
				Message:   msgSlotInPast,
				ErrorKind: kindSlotInPast,
			})

		case errors.Is(err, confirmBooking.ErrSlotTaken):
			h.metrics.IncConflict()
			h.logger.Warn("POST /bookings/confirm - Slot taken: customer_id=%s", customerID)
			handlers.RespondJSON(w, http.StatusConflict, &ConfirmBookingResponse{
				Success:   false,
				Message:   msgSlotTaken,
				ErrorKind: kindSlotTaken,
			})

		case errors.Is(err, confirmBooking.ErrTransient):
			h.metrics.IncFailure()
			h.logger.Error("POST /bookings/confirm - Retries exhausted: customer_id=%s, error=%v", customerID, err)
			handlers.RespondJSON(w, http.StatusServiceUnavailable, &ConfirmBookingResponse{
				Success:   false,
				Message:   msgTransient,
				ErrorKind: kindTransient,
			})

		default:
			h.metrics.IncFailure()
			h.logger.Error("POST /bookings/confirm - Failed: customer_id=%s, error=%v", customerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.metrics.IncConfirmed()
	h.logger.Info("POST /bookings/confirm - Booking confirmed: customer_id=%s, code=%s", customerID, result.Code)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
