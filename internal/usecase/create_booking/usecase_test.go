package create_booking_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/AgendaLite-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/AgendaLite-BookingService/internal/infra/storage/booking"
	serviceRepo "github.com/m04kA/AgendaLite-BookingService/internal/infra/storage/service"
	slotRepo "github.com/m04kA/AgendaLite-BookingService/internal/infra/storage/timeslot"
	"github.com/m04kA/AgendaLite-BookingService/internal/usecase/create_booking"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

type fixedTime struct{ now time.Time }

func (f *fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// inlineTxManager выполняет fn без настоящей транзакции
type inlineTxManager struct{ calls int }

func (m *inlineTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

type stubServiceRepo struct {
	svc *domain.Service
	err error
}

func (s *stubServiceRepo) GetByID(_ context.Context, _ int64) (*domain.Service, error) {
	return s.svc, s.err
}

type stubSlotRepo struct {
	slot *domain.TimeSlot
	err  error

	markBookedErr   error
	markBookedCalls int
}

func (s *stubSlotRepo) GetByID(_ context.Context, _ int64) (*domain.TimeSlot, error) {
	if s.err != nil {
		return nil, s.err
	}
	// Копия: use case мутирует статус после MarkBooked
	cp := *s.slot
	return &cp, nil
}

func (s *stubSlotRepo) MarkBooked(_ context.Context, _ int64) error {
	s.markBookedCalls++
	return s.markBookedErr
}

type stubBookingRepo struct {
	err   error
	calls int
	got   *domain.Booking
}

func (s *stubBookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	s.calls++
	s.got = b
	if s.err != nil {
		return nil, s.err
	}
	created := *b
	created.ID = 501
	created.CreatedAt = testNow
	return &created, nil
}

func activeService() *domain.Service {
	return &domain.Service{ID: 10, Name: "Corte de pelo", DurationMinutes: 30, IsActive: true}
}

func availableSlot() *domain.TimeSlot {
	return &domain.TimeSlot{ID: 42, ServiceID: 10, StartAt: testNow.Add(2 * time.Hour), Status: domain.SlotAvailable}
}

func validRequest() *create_booking.Request {
	return &create_booking.Request{
		ServiceID:     10,
		SlotID:        42,
		CustomerName:  "  Ana García  ",
		CustomerEmail: " Ana@Example.com ",
	}
}

func newUseCase(
	services *stubServiceRepo,
	slots *stubSlotRepo,
	bookings *stubBookingRepo,
	tx *inlineTxManager,
) *create_booking.UseCase {
	return create_booking.NewUseCase(services, slots, bookings, tx, nopLogger{}).
		WithTimeProvider(&fixedTime{now: testNow})
}

func TestCreateBookingSuccess(t *testing.T) {
	services := &stubServiceRepo{svc: activeService()}
	slots := &stubSlotRepo{slot: availableSlot()}
	bookings := &stubBookingRepo{}
	tx := &inlineTxManager{}

	resp, err := newUseCase(services, slots, bookings, tx).Execute(context.Background(), validRequest())
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.Equal(t, int64(501), resp.BookingID)
	assert.Equal(t, int64(10), resp.ServiceID)
	assert.Equal(t, int64(42), resp.SlotID)
	assert.Equal(t, testNow.Add(2*time.Hour), resp.SlotStartAt)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)

	// Имя и email сохраняются без окружающих пробелов
	assert.Equal(t, "Ana García", resp.CustomerName)
	assert.Equal(t, "Ana@Example.com", resp.CustomerEmail)

	assert.Equal(t, 1, tx.calls)
	assert.Equal(t, 1, slots.markBookedCalls)
	assert.Equal(t, 1, bookings.calls)
	assert.Equal(t, domain.StatusConfirmed, bookings.got.Status)
}

func TestCreateBookingValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*create_booking.Request)
	}{
		{"zero service id", func(r *create_booking.Request) { r.ServiceID = 0 }},
		{"negative slot id", func(r *create_booking.Request) { r.SlotID = -1 }},
		{"empty name", func(r *create_booking.Request) { r.CustomerName = "   " }},
		{"empty email", func(r *create_booking.Request) { r.CustomerEmail = "" }},
		{"malformed email", func(r *create_booking.Request) { r.CustomerEmail = "ana@example" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := &inlineTxManager{}
			uc := newUseCase(&stubServiceRepo{svc: activeService()}, &stubSlotRepo{slot: availableSlot()}, &stubBookingRepo{}, tx)

			req := validRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			require.ErrorIs(t, err, create_booking.ErrInvalidInput)

			// До транзакции дело не доходит
			assert.Equal(t, 0, tx.calls)
		})
	}
}

func TestCreateBookingPreconditions(t *testing.T) {
	tests := []struct {
		name     string
		services *stubServiceRepo
		slots    *stubSlotRepo
		wantErr  error
	}{
		{
			name:     "service not found",
			services: &stubServiceRepo{err: serviceRepo.ErrServiceNotFound},
			slots:    &stubSlotRepo{slot: availableSlot()},
			wantErr:  create_booking.ErrServiceNotFound,
		},
		{
			name: "service not bookable",
			services: &stubServiceRepo{svc: &domain.Service{
				ID: 10, Name: "Archivada", DurationMinutes: 30, IsActive: false,
			}},
			slots:   &stubSlotRepo{slot: availableSlot()},
			wantErr: create_booking.ErrServiceNotBookable,
		},
		{
			name:     "slot not found",
			services: &stubServiceRepo{svc: activeService()},
			slots:    &stubSlotRepo{err: slotRepo.ErrSlotNotFound},
			wantErr:  create_booking.ErrSlotNotFound,
		},
		{
			name:     "slot belongs to another service",
			services: &stubServiceRepo{svc: activeService()},
			slots: &stubSlotRepo{slot: &domain.TimeSlot{
				ID: 42, ServiceID: 99, StartAt: testNow.Add(time.Hour), Status: domain.SlotAvailable,
			}},
			wantErr: create_booking.ErrSlotMismatch,
		},
		{
			name:     "slot in the past",
			services: &stubServiceRepo{svc: activeService()},
			slots: &stubSlotRepo{slot: &domain.TimeSlot{
				ID: 42, ServiceID: 10, StartAt: testNow.Add(-time.Minute), Status: domain.SlotAvailable,
			}},
			wantErr: create_booking.ErrSlotExpired,
		},
		{
			name:     "slot already booked",
			services: &stubServiceRepo{svc: activeService()},
			slots: &stubSlotRepo{slot: &domain.TimeSlot{
				ID: 42, ServiceID: 10, StartAt: testNow.Add(time.Hour), Status: domain.SlotBooked,
			}},
			wantErr: create_booking.ErrSlotNotAvailable,
		},
		{
			name:     "slot blocked",
			services: &stubServiceRepo{svc: activeService()},
			slots: &stubSlotRepo{slot: &domain.TimeSlot{
				ID: 42, ServiceID: 10, StartAt: testNow.Add(time.Hour), Status: domain.SlotBlocked,
			}},
			wantErr: create_booking.ErrSlotNotAvailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bookings := &stubBookingRepo{}
			uc := newUseCase(tt.services, tt.slots, bookings, &inlineTxManager{})

			_, err := uc.Execute(context.Background(), validRequest())
			require.ErrorIs(t, err, tt.wantErr)

			// Ни одно предусловие не провалилось «наполовину»: запись
			// бронирования не создавалась, слот не помечался
			assert.Equal(t, 0, bookings.calls)
			assert.Equal(t, 0, tt.slots.markBookedCalls)
		})
	}
}

func TestCreateBookingExpiredSlotBoundary(t *testing.T) {
	// Слот, начинающийся ровно «сейчас», ещё бронируется
	slots := &stubSlotRepo{slot: &domain.TimeSlot{
		ID: 42, ServiceID: 10, StartAt: testNow, Status: domain.SlotAvailable,
	}}
	uc := newUseCase(&stubServiceRepo{svc: activeService()}, slots, &stubBookingRepo{}, &inlineTxManager{})

	_, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
}

func TestCreateBookingLostRaceOnMarkBooked(t *testing.T) {
	// Конкурент успел первым: защищённый UPDATE не нашёл AVAILABLE строку
	slots := &stubSlotRepo{slot: availableSlot(), markBookedErr: slotRepo.ErrSlotNotAvailable}
	bookings := &stubBookingRepo{}
	uc := newUseCase(&stubServiceRepo{svc: activeService()}, slots, bookings, &inlineTxManager{})

	_, err := uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, create_booking.ErrSlotNotAvailable)
	assert.Equal(t, 0, bookings.calls)
}

func TestCreateBookingLostRaceOnUniqueIndex(t *testing.T) {
	// Последняя линия защиты: уникальный индекс bookings.slot_id
	slots := &stubSlotRepo{slot: availableSlot()}
	bookings := &stubBookingRepo{err: bookingRepo.ErrSlotAlreadyBooked}
	uc := newUseCase(&stubServiceRepo{svc: activeService()}, slots, bookings, &inlineTxManager{})

	_, err := uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, create_booking.ErrSlotNotAvailable)
}

func TestCreateBookingStorageErrorsWrapInternal(t *testing.T) {
	dbErr := errors.New("connection reset")

	t.Run("service lookup fails", func(t *testing.T) {
		uc := newUseCase(&stubServiceRepo{err: dbErr}, &stubSlotRepo{slot: availableSlot()}, &stubBookingRepo{}, &inlineTxManager{})
		_, err := uc.Execute(context.Background(), validRequest())
		require.ErrorIs(t, err, create_booking.ErrInternal)
		assert.NotErrorIs(t, err, create_booking.ErrServiceNotFound)
	})

	t.Run("booking insert fails", func(t *testing.T) {
		uc := newUseCase(&stubServiceRepo{svc: activeService()}, &stubSlotRepo{slot: availableSlot()}, &stubBookingRepo{err: dbErr}, &inlineTxManager{})
		_, err := uc.Execute(context.Background(), validRequest())
		require.ErrorIs(t, err, create_booking.ErrInternal)
		assert.NotErrorIs(t, err, create_booking.ErrSlotNotAvailable)
	})
}
