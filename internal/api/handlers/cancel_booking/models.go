package cancel_booking

import (
	"time"

	cancelBooking "github.com/m04kA/AgendaLite-BookingService/internal/usecase/cancel_booking"
)

// CancelBookingRequest HTTP request model.
// Email — единственное «доказательство» владения бронированием в системе
// без логина.
type CancelBookingRequest struct {
	CustomerEmail string `json:"customerEmail"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	BookingID    int64  `json:"bookingId"`
	ServiceID    int64  `json:"serviceId"`
	SlotID       int64  `json:"slotId"`
	SlotStartAt  string `json:"slotStartAt"`
	CustomerName string `json:"customerName"`
	Status       string `json:"status"`
	CreatedAt    string `json:"createdAt"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *cancelBooking.Response) *BookingResponse {
	return &BookingResponse{
		BookingID:    resp.BookingID,
		ServiceID:    resp.ServiceID,
		SlotID:       resp.SlotID,
		SlotStartAt:  resp.SlotStartAt.Format(time.RFC3339),
		CustomerName: resp.CustomerName,
		Status:       resp.Status,
		CreatedAt:    resp.CreatedAt.Format(time.RFC3339),
	}
}
