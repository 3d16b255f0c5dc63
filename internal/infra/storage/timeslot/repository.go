package timeslot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/AgendaLite-BookingService/internal/domain"
	"github.com/m04kA/AgendaLite-BookingService/pkg/dbmetrics"
	"github.com/m04kA/AgendaLite-BookingService/pkg/psqlbuilder"
)

// pgUniqueViolation код ошибки PostgreSQL для нарушения уникальности
const pgUniqueViolation = "23505"

// Repository репозиторий для работы со слотами расписания.
// Статус слота меняют только методы MarkBooked/MarkAvailable, и только
// движок бронирований их вызывает.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый слот. Используется инструментарием наполнения
// расписания; при дубликате (service_id, start_at) возвращает ErrSlotAlreadyExists.
func (r *Repository) Create(ctx context.Context, slot *domain.TimeSlot) (*domain.TimeSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("time_slots").
		Columns(
			"service_id",
			"start_at",
			"status",
		).
		Values(
			slot.ServiceID,
			slot.StartAt,
			slot.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&slot.ID,
		&slot.CreatedAt,
		&slot.UpdatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation {
			return nil, ErrSlotAlreadyExists
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return slot, nil
}

// GetByID получает слот по ID.
// Внутри открытой транзакции строка блокируется (FOR UPDATE), чтобы два
// конкурентных создания бронирования не увидели один и тот же слот
// свободным одновременно.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.TimeSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"service_id",
		"start_at",
		"status",
		"created_at",
		"updated_at",
	).
		From("time_slots").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	var slot domain.TimeSlot
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&slot.ID,
		&slot.ServiceID,
		&slot.StartAt,
		&slot.Status,
		&slot.CreatedAt,
		&slot.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan slot: %w", ErrScanRow, err)
	}

	return &slot, nil
}

// ListAvailableByService получает доступные будущие слоты услуги,
// отсортированные по времени начала
func (r *Repository) ListAvailableByService(ctx context.Context, serviceID int64, from time.Time, limit int) ([]*domain.TimeSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"service_id",
		"start_at",
		"status",
		"created_at",
		"updated_at",
	).
		From("time_slots").
		Where(squirrel.Eq{"service_id": serviceID}).
		Where(squirrel.Eq{"status": domain.SlotAvailable}).
		Where(squirrel.GtOrEq{"start_at": from}).
		OrderBy("start_at ASC")

	if limit > 0 {
		selectBuilder = selectBuilder.Limit(uint64(limit))
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListAvailableByService - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListAvailableByService - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanSlots(rows)
}

// MarkBooked переводит слот AVAILABLE -> BOOKED.
// Условие по статусу в WHERE — это compare-and-swap: из двух конкурентных
// писателей только один получит rowsAffected = 1, второй — ErrSlotNotAvailable.
func (r *Repository) MarkBooked(ctx context.Context, id int64) error {
	return r.updateStatus(ctx, id, domain.SlotAvailable, domain.SlotBooked, ErrSlotNotAvailable)
}

// MarkAvailable возвращает слот BOOKED -> AVAILABLE.
// Используется только политикой освобождения слота при отмене.
func (r *Repository) MarkAvailable(ctx context.Context, id int64) error {
	return r.updateStatus(ctx, id, domain.SlotBooked, domain.SlotAvailable, ErrSlotNotBooked)
}

// updateStatus выполняет защищённый переход статуса слота
func (r *Repository) updateStatus(ctx context.Context, id int64, from, to domain.SlotStatus, conflictErr error) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("time_slots").
		Set("status", to).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": from}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: updateStatus - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: updateStatus - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: updateStatus - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		// Либо слота нет, либо он уже не в ожидаемом статусе
		if _, getErr := r.GetByID(ctx, id); errors.Is(getErr, ErrSlotNotFound) {
			return ErrSlotNotFound
		}
		return conflictErr
	}

	return nil
}

// scanSlots сканирует результаты запроса в слайс слотов
func (r *Repository) scanSlots(rows *sql.Rows) ([]*domain.TimeSlot, error) {
	slots := make([]*domain.TimeSlot, 0)

	for rows.Next() {
		var slot domain.TimeSlot
		if err := rows.Scan(
			&slot.ID,
			&slot.ServiceID,
			&slot.StartAt,
			&slot.Status,
			&slot.CreatedAt,
			&slot.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: scanSlots - scan row: %w", ErrScanRow, err)
		}
		slots = append(slots, &slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanSlots - rows error: %w", ErrScanRow, err)
	}

	return slots, nil
}
