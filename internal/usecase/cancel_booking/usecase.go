package cancel_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/AgendaLite-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/AgendaLite-BookingService/internal/infra/storage/booking"
)

// UseCase use case отмены бронирования.
// Единственный путь, по которому бронирование переходит CONFIRMED -> CANCELED.
type UseCase struct {
	bookingRepo  BookingRepository
	slotRepo     SlotRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		slotRepo:     slotRepo,
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

// Execute выполняет отмену бронирования.
//
// Проверки по порядку: бронирование существует -> ещё не отменено ->
// слот ещё не начался. Смена статуса атомарна; слот по текущей политике
// остаётся BOOKED, если явно не запрошено его освобождение.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelBooking: booking=%d, releaseSlot=%t", req.BookingID, req.ReleaseSlot)

	if req.BookingID <= 0 {
		return nil, fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	now := uc.timeProvider.Now()

	var (
		canceledBooking *domain.Booking
		bookedSlot      *domain.TimeSlot
	)

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Бронирование должно существовать; строка блокируется,
		// конкурентные отмены сериализуются
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: failed to get booking: %w", ErrInternal, err)
		}

		// 2. Повторная отмена запрещена, CANCELED — терминальный статус
		if booking.IsCanceled() {
			return ErrAlreadyCanceled
		}

		// 3. Прошедшую встречу отменить нельзя
		slot, err := uc.slotRepo.GetByID(txCtx, booking.SlotID)
		if err != nil {
			// Слот, на который ссылается бронирование, обязан существовать
			return fmt.Errorf("%w: failed to get slot for booking: %w", ErrInternal, err)
		}

		if !slot.IsInFuture(now) {
			return ErrTooLateToCancel
		}

		// 4. Меняем статус бронирования
		if err := uc.bookingRepo.UpdateStatus(txCtx, booking.ID, domain.StatusCanceled); err != nil {
			return fmt.Errorf("%w: failed to update booking status: %w", ErrInternal, err)
		}
		booking.Status = domain.StatusCanceled

		// 5. Освобождение слота — явная политика, по умолчанию выключена
		if req.ReleaseSlot {
			if err := uc.slotRepo.MarkAvailable(txCtx, slot.ID); err != nil {
				return fmt.Errorf("%w: failed to release slot: %w", ErrInternal, err)
			}
			slot.Status = domain.SlotAvailable
		}

		canceledBooking = booking
		bookedSlot = slot
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CancelBooking: successfully canceled booking id=%d", canceledBooking.ID)

	return &Response{
		BookingID:     canceledBooking.ID,
		ServiceID:     canceledBooking.ServiceID,
		SlotID:        canceledBooking.SlotID,
		SlotStartAt:   bookedSlot.StartAt,
		CustomerName:  canceledBooking.CustomerName,
		CustomerEmail: canceledBooking.CustomerEmail,
		Status:        string(canceledBooking.Status),
		CreatedAt:     canceledBooking.CreatedAt,
	}, nil
}

// ExecuteForCustomer выполняет отмену от имени клиента.
//
// Авторизация по email заменяет аутентификацию в системе без логина:
// сохранённый email бронирования сравнивается с переданным без учёта
// регистра и окружающих пробелов. При несовпадении — и если бронирования
// нет вовсе — возвращается один и тот же ErrUnauthorized. Замена этой
// проверки на токены локализована в этом методе.
func (uc *UseCase) ExecuteForCustomer(ctx context.Context, bookingID int64, customerEmail string) (*Response, error) {
	uc.logger.Info("CancelBookingForCustomer: booking=%d", bookingID)

	if bookingID <= 0 {
		return nil, fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}
	if domain.NormalizeEmail(customerEmail) == "" {
		return nil, fmt.Errorf("%w: customerEmail is required", ErrInvalidInput)
	}

	booking, err := uc.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("CancelBookingForCustomer: booking id=%d not found", bookingID)
			return nil, ErrUnauthorized
		}
		return nil, fmt.Errorf("%w: failed to get booking: %w", ErrInternal, err)
	}

	if !booking.EmailMatches(customerEmail) {
		uc.logger.Warn("CancelBookingForCustomer: email mismatch for booking id=%d", bookingID)
		return nil, ErrUnauthorized
	}

	resp, err := uc.Execute(ctx, &Request{BookingID: bookingID})
	if errors.Is(err, ErrBookingNotFound) {
		// Бронирование исчезло между проверкой email и транзакцией;
		// клиенту отвечаем так же, как на несуществующее
		uc.logger.Warn("CancelBookingForCustomer: booking id=%d vanished before cancel", bookingID)
		return nil, ErrUnauthorized
	}
	return resp, err
}
