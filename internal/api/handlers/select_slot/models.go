package select_slot

import (
	"time"

	"github.com/salonhub/booking-engine/internal/domain"
	selectSlot "github.com/salonhub/booking-engine/internal/usecase/select_slot"
	"github.com/salonhub/booking-engine/pkg/ptr"
	"github.com/salonhub/booking-engine/pkg/types"
)

// SelectSlotRequest HTTP request model
type SelectSlotRequest struct {
	SalonID       int64  `json:"salonId"`
	StaffID       int64  `json:"staffId"`
	ServiceID     int64  `json:"serviceId"`
	Date          string `json:"date"`      // "2026-03-05"
	StartTime     string `json:"startTime"` // "15:00"
	Locale        string `json:"locale,omitempty"`
	CustomerPhone string `json:"customerPhone,omitempty"`
}

// SelectSlotResponse HTTP response model
type SelectSlotResponse struct {
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
	Message   string `json:"message,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *SelectSlotRequest) ToUseCaseRequest(customerID string) (*selectSlot.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	req := &selectSlot.Request{
		CustomerID: customerID,
		SalonID:    r.SalonID,
		StaffID:    r.StaffID,
		ServiceID:  r.ServiceID,
		Date:       date,
		StartTime:  startTime,
		Locale:     r.Locale,
	}
	if r.CustomerPhone != "" {
		req.CustomerPhone = ptr.Ptr(r.CustomerPhone)
	}

	return req, nil
}
