package get_services

import "github.com/m04kA/AgendaLite-BookingService/internal/domain"

// ServiceResponse HTTP response model
type ServiceResponse struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	DurationMinutes int    `json:"durationMinutes"`
}

// ServiceListResponse список активных услуг
type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
}

// FromDomainServices конвертирует domain модели в HTTP response
func FromDomainServices(services []*domain.Service) *ServiceListResponse {
	items := make([]ServiceResponse, 0, len(services))
	for _, s := range services {
		items = append(items, ServiceResponse{
			ID:              s.ID,
			Name:            s.Name,
			DurationMinutes: s.DurationMinutes,
		})
	}
	return &ServiceListResponse{Services: items}
}
