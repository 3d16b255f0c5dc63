package get_service_slots

import (
	"context"

	"github.com/m04kA/AgendaLite-BookingService/internal/domain"
)

type CatalogService interface {
	GetAvailableSlots(ctx context.Context, serviceID int64, limit int) ([]*domain.TimeSlot, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
