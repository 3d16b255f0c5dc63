package cancel_booking

import (
	"context"

	cancelBooking "github.com/m04kA/AgendaLite-BookingService/internal/usecase/cancel_booking"
)

type CancelBookingUseCase interface {
	ExecuteForCustomer(ctx context.Context, bookingID int64, customerEmail string) (*cancelBooking.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
