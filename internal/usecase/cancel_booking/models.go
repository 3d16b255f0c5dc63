package cancel_booking

import "time"

// Request модель запроса на отмену бронирования.
//
// ReleaseSlot — явный выбор политики: по умолчанию слот остаётся BOOKED
// навсегда и не возвращается в пул доступных (бронирование на слот
// существует максимум одно за всю его жизнь). Включение флага освобождает
// слот в той же транзакции, но из-за уникального индекса bookings.slot_id
// повторно забронировать такой слот всё равно нельзя: попытка закончится
// конфликтом занятого слота. Прежде чем открывать флаг наружу, уникальность
// придётся ослабить до частичного индекса по активным бронированиям.
type Request struct {
	BookingID   int64
	ReleaseSlot bool
}

// Response модель ответа с отменённым бронированием
type Response struct {
	BookingID     int64
	ServiceID     int64
	SlotID        int64
	SlotStartAt   time.Time
	CustomerName  string
	CustomerEmail string
	Status        string // CANCELED
	CreatedAt     time.Time
}
