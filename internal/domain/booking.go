package domain

import (
	"strings"
	"time"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusConfirmed BookingStatus = "CONFIRMED"
	StatusCanceled  BookingStatus = "CANCELED"
)

// Booking represents a customer's claim on exactly one time slot.
// The slot reference is unique across all bookings, permanently: a canceled
// booking's slot is never recycled into a fresh booking.
type Booking struct {
	ID        int64
	ServiceID int64 // denormalized copy of the slot's service
	SlotID    int64

	CustomerName  string
	CustomerEmail string

	Status    BookingStatus
	CreatedAt time.Time
}

// IsCanceled returns true if the booking has been canceled
func (b *Booking) IsCanceled() bool {
	return b.Status == StatusCanceled
}

// CanBeCanceled returns true if the booking can still be canceled
func (b *Booking) CanBeCanceled() bool {
	return b.Status == StatusConfirmed
}

// EmailMatches compares the stored customer email against the supplied one,
// ignoring case and surrounding whitespace. This is a capability check that
// substitutes for authentication in a system with no login; it is not proof
// of mailbox possession.
func (b *Booking) EmailMatches(email string) bool {
	return NormalizeEmail(b.CustomerEmail) == NormalizeEmail(email)
}

// NormalizeEmail trims surrounding whitespace and lowercases an email address
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// BookingWithSlot is a booking joined with the data a customer-facing
// listing needs: when the appointment starts and what it is for.
type BookingWithSlot struct {
	Booking
	SlotStartAt time.Time
	ServiceName string
}

// CustomerBookingsFilter filters the booking history of a customer
type CustomerBookingsFilter struct {
	CustomerEmail string         // required
	Status        *BookingStatus // optional status filter
	StartFrom     *time.Time     // optional lower bound on the slot start
	StartTo       *time.Time     // optional upper bound on the slot start
	Limit         int            // page size, 0 = default
	Offset        int
}
