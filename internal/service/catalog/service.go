package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/AgendaLite-BookingService/internal/domain"
	serviceRepo "github.com/m04kA/AgendaLite-BookingService/internal/infra/storage/service"
)

// Service read-сторона каталога: список услуг и их доступных слотов.
// Ничего не пишет и не несёт инвариантов движка бронирований.
type Service struct {
	serviceRepo  ServiceRepository
	slotRepo     SlotRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(
	serviceRepo ServiceRepository,
	slotRepo SlotRepository,
	logger Logger,
) *Service {
	return &Service{
		serviceRepo:  serviceRepo,
		slotRepo:     slotRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени (используется в тестах)
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// ListServices получает активные услуги, отсортированные по имени
func (s *Service) ListServices(ctx context.Context) ([]*domain.Service, error) {
	services, err := s.serviceRepo.ListActive(ctx)
	if err != nil {
		s.logger.Error("ListServices: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListServices - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListServices: fetched %d active services", len(services))
	return services, nil
}

// GetAvailableSlots получает доступные будущие слоты активной услуги.
// Для несуществующей или неактивной услуги возвращает ErrServiceNotFound —
// клиентам показываются только активные услуги.
func (s *Service) GetAvailableSlots(ctx context.Context, serviceID int64, limit int) ([]*domain.TimeSlot, error) {
	if serviceID <= 0 {
		return nil, fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if limit <= 0 {
		limit = domain.DefaultSlotsLimit
	}
	if limit > domain.MaxSlotsLimit {
		limit = domain.MaxSlotsLimit
	}

	svc, err := s.serviceRepo.GetByID(ctx, serviceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			s.logger.Warn("GetAvailableSlots: service id=%d not found", serviceID)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("GetAvailableSlots: repository error for service id=%d: %v", serviceID, err)
		return nil, fmt.Errorf("%w: GetAvailableSlots - repository error: %v", ErrInternal, err)
	}

	if !svc.CanBeBooked() {
		s.logger.Warn("GetAvailableSlots: service id=%d is not active", serviceID)
		return nil, ErrServiceNotFound
	}

	now := s.timeProvider.Now()

	slots, err := s.slotRepo.ListAvailableByService(ctx, serviceID, now, limit)
	if err != nil {
		s.logger.Error("GetAvailableSlots: repository error for service id=%d: %v", serviceID, err)
		return nil, fmt.Errorf("%w: GetAvailableSlots - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetAvailableSlots: fetched %d slots for service id=%d", len(slots), serviceID)
	return slots, nil
}
