package get_customer_bookings

import (
	"time"

	"github.com/m04kA/AgendaLite-BookingService/internal/service/bookings/models"
)

// BookingResponse HTTP response model
type BookingResponse struct {
	ID            int64  `json:"id"`
	ServiceID     int64  `json:"serviceId"`
	ServiceName   string `json:"serviceName"`
	SlotID        int64  `json:"slotId"`
	SlotStartAt   string `json:"slotStartAt"`
	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`
	Status        string `json:"status"`
	CreatedAt     string `json:"createdAt"`
}

// BookingListResponse страница истории бронирований клиента
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Limit    int               `json:"limit"`
	Offset   int               `json:"offset"`
}

// FromServiceResponse конвертирует модель сервиса в HTTP response
func FromServiceResponse(resp *models.BookingListResponse) *BookingListResponse {
	items := make([]BookingResponse, 0, len(resp.Bookings))
	for _, b := range resp.Bookings {
		items = append(items, BookingResponse{
			ID:            b.ID,
			ServiceID:     b.ServiceID,
			ServiceName:   b.ServiceName,
			SlotID:        b.SlotID,
			SlotStartAt:   b.SlotStartAt.Format(time.RFC3339),
			CustomerName:  b.CustomerName,
			CustomerEmail: b.CustomerEmail,
			Status:        b.Status,
			CreatedAt:     b.CreatedAt.Format(time.RFC3339),
		})
	}
	return &BookingListResponse{
		Bookings: items,
		Limit:    resp.Limit,
		Offset:   resp.Offset,
	}
}
