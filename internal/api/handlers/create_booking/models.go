package create_booking

import (
	"time"

	createBooking "github.com/m04kA/AgendaLite-BookingService/internal/usecase/create_booking"
	"github.com/m04kA/AgendaLite-BookingService/pkg/validate"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ServiceID     int64  `json:"serviceId"`
	SlotID        int64  `json:"slotId"`
	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`
}

// ValidationErrorResponse ответ с ошибками валидации формы по полям
type ValidationErrorResponse struct {
	Error  string               `json:"error"`
	Fields validate.FieldErrors `json:"fields"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	BookingID     int64  `json:"bookingId"`
	ServiceID     int64  `json:"serviceId"`
	SlotID        int64  `json:"slotId"`
	SlotStartAt   string `json:"slotStartAt"`
	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`
	Status        string `json:"status"`
	CreatedAt     string `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() *createBooking.Request {
	return &createBooking.Request{
		ServiceID:     r.ServiceID,
		SlotID:        r.SlotID,
		CustomerName:  r.CustomerName,
		CustomerEmail: r.CustomerEmail,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		BookingID:     resp.BookingID,
		ServiceID:     resp.ServiceID,
		SlotID:        resp.SlotID,
		SlotStartAt:   resp.SlotStartAt.Format(time.RFC3339),
		CustomerName:  resp.CustomerName,
		CustomerEmail: resp.CustomerEmail,
		Status:        resp.Status,
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
	}
}
