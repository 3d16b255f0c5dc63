package domain

import "time"

// Service represents a bookable offering (a consultation, a haircut, etc.)
type Service struct {
	ID              int64
	Name            string
	DurationMinutes int
	IsActive        bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CanBeBooked returns true if the service accepts new bookings
func (s *Service) CanBeBooked() bool {
	return s.IsActive
}
