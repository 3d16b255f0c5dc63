package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/AgendaLite-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/AgendaLite-BookingService/internal/infra/storage/booking"
	serviceRepo "github.com/m04kA/AgendaLite-BookingService/internal/infra/storage/service"
	slotRepo "github.com/m04kA/AgendaLite-BookingService/internal/infra/storage/timeslot"
)

// UseCase use case создания бронирования — ядро движка.
// Единственный путь, по которому слот переходит AVAILABLE -> BOOKED.
type UseCase struct {
	serviceRepo  ServiceRepository
	slotRepo     SlotRepository
	bookingRepo  BookingRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	serviceRepo ServiceRepository,
	slotRepo SlotRepository,
	bookingRepo BookingRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		serviceRepo:  serviceRepo,
		slotRepo:     slotRepo,
		bookingRepo:  bookingRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени (используется в тестах)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case создания бронирования.
//
// Предусловия проверяются строго по порядку, каждое со своей ошибкой:
// услуга существует -> услуга активна -> слот существует -> слот принадлежит
// услуге -> слот не в прошлом -> слот AVAILABLE. Перевод слота в BOOKED и
// создание бронирования выполняются одной сериализуемой транзакцией: либо
// происходят оба изменения, либо ни одного. Из двух конкурентных запросов
// на один слот успешным будет ровно один — второй получит ErrSlotNotAvailable
// на блокировке строки слота, либо конфликт сериализации, который менеджер
// транзакций повторит и который закончится тем же ErrSlotNotAvailable.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: service=%d, slot=%d, email=%s",
		req.ServiceID, req.SlotID, domain.NormalizeEmail(req.CustomerEmail))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время один раз на весь запрос
	now := uc.timeProvider.Now()

	var (
		createdBooking *domain.Booking
		bookedSlot     *domain.TimeSlot
	)

	// 3. Все проверки и оба изменения — в одной сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Услуга должна существовать
		service, err := uc.serviceRepo.GetByID(txCtx, req.ServiceID)
		if err != nil {
			if errors.Is(err, serviceRepo.ErrServiceNotFound) {
				return ErrServiceNotFound
			}
			return fmt.Errorf("%w: failed to get service: %w", ErrInternal, err)
		}

		// 3.2. Услуга должна принимать бронирования
		if !service.CanBeBooked() {
			return ErrServiceNotBookable
		}

		// 3.3. Слот должен существовать; внутри транзакции строка
		// блокируется (FOR UPDATE) — второй конкурент ждёт здесь
		slot, err := uc.slotRepo.GetByID(txCtx, req.SlotID)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				return ErrSlotNotFound
			}
			return fmt.Errorf("%w: failed to get slot: %w", ErrInternal, err)
		}

		// 3.4. Слот должен принадлежать указанной услуге
		if slot.ServiceID != service.ID {
			return ErrSlotMismatch
		}

		// 3.5. Слот не должен быть в прошлом
		if !slot.IsInFuture(now) {
			return ErrSlotExpired
		}

		// 3.6. Слот должен быть строго AVAILABLE
		if slot.Status != domain.SlotAvailable {
			return ErrSlotNotAvailable
		}

		// 3.7. Переводим слот в BOOKED защищённым обновлением
		if err := uc.slotRepo.MarkBooked(txCtx, slot.ID); err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotAvailable) {
				return ErrSlotNotAvailable
			}
			return fmt.Errorf("%w: failed to mark slot booked: %w", ErrInternal, err)
		}
		slot.Status = domain.SlotBooked

		// 3.8. Создаем бронирование, связанное со слотом и услугой
		booking := &domain.Booking{
			ServiceID:     service.ID,
			SlotID:        slot.ID,
			CustomerName:  strings.TrimSpace(req.CustomerName),
			CustomerEmail: strings.TrimSpace(req.CustomerEmail),
			Status:        domain.StatusConfirmed,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			// Уникальный индекс slot_id сработал — гонка, которую не
			// остановила блокировка; для клиента это занятый слот
			if errors.Is(err, bookingRepo.ErrSlotAlreadyBooked) {
				return ErrSlotNotAvailable
			}
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		createdBooking = created
		bookedSlot = slot
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d for slot id=%d",
		createdBooking.ID, bookedSlot.ID)

	return &Response{
		BookingID:     createdBooking.ID,
		ServiceID:     createdBooking.ServiceID,
		SlotID:        createdBooking.SlotID,
		SlotStartAt:   bookedSlot.StartAt,
		CustomerName:  createdBooking.CustomerName,
		CustomerEmail: createdBooking.CustomerEmail,
		Status:        string(createdBooking.Status),
		CreatedAt:     createdBooking.CreatedAt,
	}, nil
}
