package get_service_slots

import (
	"time"

	"github.com/m04kA/AgendaLite-BookingService/internal/domain"
)

// SlotResponse HTTP response model
type SlotResponse struct {
	ID        int64  `json:"id"`
	ServiceID int64  `json:"serviceId"`
	StartAt   string `json:"startAt"`
	Status    string `json:"status"`
}

// SlotListResponse доступные слоты услуги
type SlotListResponse struct {
	ServiceID int64          `json:"serviceId"`
	Slots     []SlotResponse `json:"slots"`
}

// FromDomainSlots конвертирует domain модели в HTTP response
func FromDomainSlots(serviceID int64, slots []*domain.TimeSlot) *SlotListResponse {
	items := make([]SlotResponse, 0, len(slots))
	for _, s := range slots {
		items = append(items, SlotResponse{
			ID:        s.ID,
			ServiceID: s.ServiceID,
			StartAt:   s.StartAt.Format(time.RFC3339),
			Status:    string(s.Status),
		})
	}
	return &SlotListResponse{ServiceID: serviceID, Slots: items}
}
