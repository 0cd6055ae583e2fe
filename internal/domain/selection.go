package domain

import (
	"time"

	"github.com/salonhub/booking-engine/pkg/types"
)

// PendingSelection is a customer's tentative, not-yet-committed slot choice.
// It lives in the session store under the customer identity with a short TTL:
// created on slot pick, overwritten on re-pick (last write wins), consumed on
// confirmation, or expired by the store if never confirmed.
type PendingSelection struct {
	CustomerID string `json:"customerId"`
	// CustomerPhone is an optional contact phone the chat pipeline collected;
	// carried onto the booking row when the selection is confirmed.
	CustomerPhone *string          `json:"customerPhone,omitempty"`
	SalonID       int64            `json:"salonId"`
	StaffID       int64            `json:"staffId"`
	ServiceID     int64            `json:"serviceId"`
	Date          time.Time        `json:"date"`      // requested date, time part ignored
	StartTime     types.TimeString `json:"startTime"` // requested time "HH:MM" in salon local time
	Locale        string           `json:"locale"`
	CreatedAt     time.Time        `json:"createdAt"`
}

// StartInstant computes the absolute start of the selected slot in the
// salon's timezone.
func (s *PendingSelection) StartInstant(loc *time.Location) (time.Time, error) {
	return s.StartTime.OnDate(s.Date, loc)
}
