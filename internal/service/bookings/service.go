package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/AgendaLite-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/AgendaLite-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/AgendaLite-BookingService/internal/service/bookings/models"
)

// Service read-сторона бронирований: карточка бронирования и история
// клиента. Статусы здесь не меняются — это делают только use cases движка.
type Service struct {
	bookingRepo BookingRepository
	slotRepo    SlotRepository
	serviceRepo ServiceRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	serviceRepo ServiceRepository,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		slotRepo:    slotRepo,
		serviceRepo: serviceRepo,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID вместе с данными слота и услуги
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	slot, err := s.slotRepo.GetByID(ctx, booking.SlotID)
	if err != nil {
		s.logger.Error("GetByID: failed to get slot id=%d for booking id=%d: %v", booking.SlotID, id, err)
		return nil, fmt.Errorf("%w: GetByID - failed to get slot: %v", ErrInternal, err)
	}

	svc, err := s.serviceRepo.GetByID(ctx, booking.ServiceID)
	if err != nil {
		s.logger.Error("GetByID: failed to get service id=%d for booking id=%d: %v", booking.ServiceID, id, err)
		return nil, fmt.Errorf("%w: GetByID - failed to get service: %v", ErrInternal, err)
	}

	resp := models.FromDomainBooking(booking, slot, svc.Name)
	return &resp, nil
}

// GetCustomerBookings получает историю бронирований клиента с фильтрацией
// по статусу и периоду, с пагинацией
func (s *Service) GetCustomerBookings(ctx context.Context, req *models.GetCustomerBookingsRequest) (*models.BookingListResponse, error) {
	if domain.NormalizeEmail(req.CustomerEmail) == "" {
		return nil, fmt.Errorf("%w: customerEmail is required", ErrInvalidInput)
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetCustomerBookings: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	if filter.Limit <= 0 {
		filter.Limit = domain.DefaultBookingsLimit
	}
	if filter.Limit > domain.MaxBookingsLimit {
		filter.Limit = domain.MaxBookingsLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	bookings, err := s.bookingRepo.GetByCustomerWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetCustomerBookings: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetCustomerBookings - repository error: %v", ErrInternal, err)
	}

	items := make([]models.BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		items = append(items, models.FromDomainBookingWithSlot(b))
	}

	s.logger.Info("GetCustomerBookings: fetched %d bookings", len(items))

	return &models.BookingListResponse{
		Bookings: items,
		Limit:    filter.Limit,
		Offset:   filter.Offset,
	}, nil
}
