package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/AgendaLite-BookingService/internal/domain"
	"github.com/m04kA/AgendaLite-BookingService/pkg/dbmetrics"
	"github.com/m04kA/AgendaLite-BookingService/pkg/psqlbuilder"
)

// pgUniqueViolation код ошибки PostgreSQL для нарушения уникальности
const pgUniqueViolation = "23505"

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование.
// Вызывается только внутри транзакции создания бронирования, вместе с
// переводом слота в BOOKED. Уникальный индекс bookings.slot_id — последняя
// линия защиты от двойного бронирования: если гонку не остановила блокировка
// слота, здесь второй писатель получит ErrSlotAlreadyBooked.
func (r *Repository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"service_id",
			"slot_id",
			"customer_name",
			"customer_email",
			"status",
		).
		Values(
			b.ServiceID,
			b.SlotID,
			b.CustomerName,
			b.CustomerEmail,
			b.Status,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&b.ID,
		&b.CreatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation {
			return nil, ErrSlotAlreadyBooked
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return b, nil
}

// GetByID получает бронирование по ID.
// Внутри открытой транзакции строка блокируется (FOR UPDATE), чтобы
// конкурентные отмены одного бронирования сериализовались.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"service_id",
		"slot_id",
		"customer_name",
		"customer_email",
		"status",
		"created_at",
	).
		From("bookings").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	var b domain.Booking
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&b.ID,
		&b.ServiceID,
		&b.SlotID,
		&b.CustomerName,
		&b.CustomerEmail,
		&b.Status,
		&b.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %w", ErrScanRow, err)
	}

	return &b, nil
}

// GetBySlotID получает бронирование, закреплённое за слотом.
// Слот ссылается максимум на одно бронирование за всю свою жизнь.
func (r *Repository) GetBySlotID(ctx context.Context, slotID int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"service_id",
		"slot_id",
		"customer_name",
		"customer_email",
		"status",
		"created_at",
	).
		From("bookings").
		Where(squirrel.Eq{"slot_id": slotID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetBySlotID - build select query: %w", ErrBuildQuery, err)
	}

	var b domain.Booking
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&b.ID,
		&b.ServiceID,
		&b.SlotID,
		&b.CustomerName,
		&b.CustomerEmail,
		&b.Status,
		&b.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySlotID - scan booking: %w", ErrScanRow, err)
	}

	return &b, nil
}

// GetByCustomerWithFilter получает историю бронирований клиента с фильтрацией
// по статусу и периоду начала слота, с пагинацией.
//
// Примеры использования:
//
//  1. Вся история клиента:
//     filter := domain.CustomerBookingsFilter{CustomerEmail: "ana@x.com"}
//
//  2. Только подтверждённые:
//     status := domain.StatusConfirmed
//     filter := domain.CustomerBookingsFilter{CustomerEmail: "ana@x.com", Status: &status}
//
//  3. За период:
//     filter := domain.CustomerBookingsFilter{CustomerEmail: "ana@x.com", StartFrom: &from, StartTo: &to}
func (r *Repository) GetByCustomerWithFilter(ctx context.Context, filter domain.CustomerBookingsFilter) ([]*domain.BookingWithSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"b.id",
		"b.service_id",
		"b.slot_id",
		"b.customer_name",
		"b.customer_email",
		"b.status",
		"b.created_at",
		"ts.start_at",
		"s.name",
	).
		From("bookings b").
		Join("time_slots ts ON ts.id = b.slot_id").
		Join("services s ON s.id = b.service_id").
		Where(squirrel.Expr("LOWER(b.customer_email) = ?", domain.NormalizeEmail(filter.CustomerEmail)))

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"b.status": *filter.Status})
	}
	if filter.StartFrom != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"ts.start_at": *filter.StartFrom})
	}
	if filter.StartTo != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"ts.start_at": *filter.StartTo})
	}

	selectBuilder = selectBuilder.OrderBy("ts.start_at DESC")

	limit := filter.Limit
	if limit <= 0 {
		limit = domain.DefaultBookingsLimit
	}
	selectBuilder = selectBuilder.Limit(uint64(limit))

	if filter.Offset > 0 {
		selectBuilder = selectBuilder.Offset(uint64(filter.Offset))
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCustomerWithFilter - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCustomerWithFilter - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings := make([]*domain.BookingWithSlot, 0)
	for rows.Next() {
		var b domain.BookingWithSlot
		if err := rows.Scan(
			&b.ID,
			&b.ServiceID,
			&b.SlotID,
			&b.CustomerName,
			&b.CustomerEmail,
			&b.Status,
			&b.CreatedAt,
			&b.SlotStartAt,
			&b.ServiceName,
		); err != nil {
			return nil, fmt.Errorf("%w: GetByCustomerWithFilter - scan row: %w", ErrScanRow, err)
		}
		bookings = append(bookings, &b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByCustomerWithFilter - rows error: %w", ErrScanRow, err)
	}

	return bookings, nil
}

// UpdateStatus обновляет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}
