package get_booking

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

// FromServiceResponse конвертирует модель сервиса в HTTP response
func FromServiceResponse(resp *models.BookingResponse) *BookingResponse {
	return &BookingResponse{
		ID:            resp.ID,
		ServiceID:     resp.ServiceID,
		ServiceName:   resp.ServiceName,
		SlotID:        resp.SlotID,
		SlotStartAt:   resp.SlotStartAt.Format(time.RFC3339),
		CustomerName:  resp.CustomerName,
		CustomerEmail: resp.CustomerEmail,
		Status:        resp.Status,
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
	}
}
