package select_slot

import (
	"errors"
	"net/http"

	"github.com/salonhub/booking-engine/internal/api/handlers"
	"github.com/salonhub/booking-engine/internal/api/middleware"
	"github.com/salonhub/booking-engine/internal/integrations/usagetracker"
	"github.com/salonhub/booking-engine/internal/service/availability"
	selectSlot "github.com/salonhub/booking-engine/internal/usecase/select_slot"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgSalonNotFound      = "салон не найден"
	msgQuotaExhausted     = "лимит бронирований салона исчерпан"
	msgQuotaUnavailable   = "сервис временно недоступен, попробуйте позже"
	msgSlotInPast         = "это время уже прошло, выберите другое"
	msgSlotTaken          = "это время занято, выберите другое"
	msgStaffUnavailable   = "мастер недоступен для записи"
	msgServiceUnavailable = "услуга недоступна для записи"
)

type Handler struct {
	useCase SelectSlotUseCase
	usage   UsageTrackerClient
	logger  Logger
}

func NewHandler(useCase SelectSlotUseCase, usage UsageTrackerClient, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		usage:   usage,
		logger:  logger,
	}
}

// Handle POST /api/v1/slots/select
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	customerID := middleware.CustomerID(r.Context())

	var req SelectSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /slots/select - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Проверка квоты до вызова ядра: при исчерпанной квоте бронирование
	// не начинается вовсе
	hasQuota, err := h.usage.HasQuota(r.Context(), req.SalonID)
	if err != nil {
		h.logger.Error("POST /slots/select - Quota check failed: salon_id=%d, error=%v", req.SalonID, err)
		if errors.Is(err, usagetracker.ErrUnavailable) {
			handlers.RespondError(w, http.StatusServiceUnavailable, msgQuotaUnavailable)
			return
		}
		handlers.RespondInternalError(w)
		return
	}
	if !hasQuota {
		h.logger.Warn("POST /slots/select - Quota exhausted: salon_id=%d", req.SalonID)
		handlers.RespondError(w, http.StatusTooManyRequests, msgQuotaExhausted)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(customerID)
	if err != nil {
		h.logger.Warn("POST /slots/select - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, selectSlot.ErrInvalidInput):
			h.logger.Warn("POST /slots/select - Invalid input: customer_id=%s, error=%v", customerID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, selectSlot.ErrSalonNotFound):
			h.logger.Warn("POST /slots/select - Salon not found: salon_id=%d", req.SalonID)
			handlers.RespondNotFound(w, msgSalonNotFound)

		default:
			h.logger.Error("POST /slots/select - Failed: customer_id=%s, error=%v", customerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := SelectSlotResponse{
		Available: result.Available,
		Reason:    result.Reason,
	}
	if !result.Available {
		response.Message = reasonMessage(result.Reason)
	}

	h.logger.Info("POST /slots/select - customer_id=%s, salon_id=%d, available=%t",
		customerID, req.SalonID, result.Available)
	handlers.RespondJSON(w, http.StatusOK, response)
}

// reasonMessage возвращает текст для клиента по причине недоступности
func reasonMessage(reason string) string {
	switch availability.Reason(reason) {
	case availability.ReasonInPast:
		return msgSlotInPast
	case availability.ReasonTaken:
		return msgSlotTaken
	case availability.ReasonStaffUnavailable:
		return msgStaffUnavailable
	case availability.ReasonServiceUnavailable:
		return msgServiceUnavailable
	default:
		return msgSlotTaken
	}
}
