package domain

import "time"

// Salon represents a salon the engine books appointments for.
// Reference data, read-only from the booking core's perspective.
type Salon struct {
	ID       int64
	Name     string
	Timezone string // IANA name, e.g. "Europe/Moscow"
}

// Location resolves the salon's timezone.
func (s *Salon) Location() (*time.Location, error) {
	return time.LoadLocation(s.Timezone)
}

// StaffMember represents a bookable staff member of a salon
type StaffMember struct {
	ID          int64
	SalonID     int64
	DisplayName string
	Active      bool
}

// Service represents a bookable service offered by a salon
type Service struct {
	ID              int64
	SalonID         int64
	Name            string
	DurationMinutes int
	Price           float64
	Active          bool
}

// Duration returns the service duration used to compute a booking's EndsAt
func (s *Service) Duration() time.Duration {
	return time.Duration(s.DurationMinutes) * time.Minute
}
