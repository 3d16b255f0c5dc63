package domain

import "time"

// SlotStatus represents the status of a time slot
type SlotStatus string

const (
	SlotAvailable SlotStatus = "AVAILABLE"
	SlotBlocked   SlotStatus = "BLOCKED"
	SlotBooked    SlotStatus = "BOOKED"
)

// TimeSlot represents a bookable instant of one service.
// At most one slot exists per (service, start_at) pair. The booking engine
// is the only writer of Status; BLOCKED is set by administrative tooling only.
type TimeSlot struct {
	ID        int64
	ServiceID int64
	StartAt   time.Time
	Status    SlotStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsInFuture returns true if the slot has not started yet at the given instant
func (s *TimeSlot) IsInFuture(now time.Time) bool {
	return !s.StartAt.Before(now)
}

// IsAvailable returns true if the slot can still be booked at the given instant
func (s *TimeSlot) IsAvailable(now time.Time) bool {
	return s.IsInFuture(now) && s.Status == SlotAvailable
}

// IsBooked returns true if the slot backs a booking
func (s *TimeSlot) IsBooked() bool {
	return s.Status == SlotBooked
}
