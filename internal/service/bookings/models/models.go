package models

import (
	"errors"
	"time"

	"github.com/m04kA/AgendaLite-BookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// GetCustomerBookingsRequest запрос на получение истории бронирований клиента
type GetCustomerBookingsRequest struct {
	CustomerEmail string
	Status        *string
	StartFrom     *time.Time
	StartTo       *time.Time
	Limit         int
	Offset        int
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetCustomerBookingsRequest) ToDomainFilter() (domain.CustomerBookingsFilter, error) {
	filter := domain.CustomerBookingsFilter{
		CustomerEmail: r.CustomerEmail,
		StartFrom:     r.StartFrom,
		StartTo:       r.StartTo,
		Limit:         r.Limit,
		Offset:        r.Offset,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return domain.CustomerBookingsFilter{}, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// BookingResponse бронирование в представлении read-стороны
type BookingResponse struct {
	ID            int64
	ServiceID     int64
	ServiceName   string
	SlotID        int64
	SlotStartAt   time.Time
	CustomerName  string
	CustomerEmail string
	Status        string
	CreatedAt     time.Time
}

// BookingListResponse страница истории бронирований
type BookingListResponse struct {
	Bookings []BookingResponse
	Limit    int
	Offset   int
}

// ToDomainBookingStatus валидирует и конвертирует статус из строки
func ToDomainBookingStatus(s string) (domain.BookingStatus, error) {
	switch domain.BookingStatus(s) {
	case domain.StatusConfirmed:
		return domain.StatusConfirmed, nil
	case domain.StatusCanceled:
		return domain.StatusCanceled, nil
	default:
		return "", ErrInvalidStatus
	}
}

// FromDomainBookingWithSlot конвертирует domain модель в response
func FromDomainBookingWithSlot(b *domain.BookingWithSlot) BookingResponse {
	return BookingResponse{
		ID:            b.ID,
		ServiceID:     b.ServiceID,
		ServiceName:   b.ServiceName,
		SlotID:        b.SlotID,
		SlotStartAt:   b.SlotStartAt,
		CustomerName:  b.CustomerName,
		CustomerEmail: b.CustomerEmail,
		Status:        string(b.Status),
		CreatedAt:     b.CreatedAt,
	}
}

// FromDomainBooking конвертирует бронирование и его слот в response
func FromDomainBooking(b *domain.Booking, slot *domain.TimeSlot, serviceName string) BookingResponse {
	return BookingResponse{
		ID:            b.ID,
		ServiceID:     b.ServiceID,
		ServiceName:   serviceName,
		SlotID:        b.SlotID,
		SlotStartAt:   slot.StartAt,
		CustomerName:  b.CustomerName,
		CustomerEmail: b.CustomerEmail,
		Status:        string(b.Status),
		CreatedAt:     b.CreatedAt,
	}
}
