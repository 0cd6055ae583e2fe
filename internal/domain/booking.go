package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
)

// Booking represents a committed appointment in the system.
//
// Invariant: for a given staff member no two bookings with overlapping
// [StartsAt, EndsAt) intervals may both be in a non-cancelled state.
// The invariant is guarded by the confirm_booking usecase, which re-checks
// overlaps inside a serializable transaction before inserting the row.
type Booking struct {
	ID            int64
	SalonID       int64
	StaffID       int64
	ServiceID     int64
	CustomerID    string // chat identity of the customer
	CustomerPhone *string
	StartsAt      time.Time
	EndsAt        time.Time // StartsAt + service duration
	Status        BookingStatus
	Code          string // short user-presentable code, unique across bookings

	// Denormalized data for confirmation messages and history
	ServiceName string
	StaffName   string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking occupies its slot
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// Overlaps returns true if the booking interval intersects [start, end).
// Boundary touches do not count: a booking ending at 15:00 does not
// conflict with one starting at 15:00.
func (b *Booking) Overlaps(start, end time.Time) bool {
	return b.StartsAt.Before(end) && b.EndsAt.After(start)
}
