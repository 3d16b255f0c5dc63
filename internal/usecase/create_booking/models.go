package create_booking

import "time"

// Request модель запроса на создание бронирования
type Request struct {
	ServiceID     int64  // ID услуги
	SlotID        int64  // ID слота расписания
	CustomerName  string // Имя клиента
	CustomerEmail string // Email клиента (используется потом для отмены)
}

// Response модель ответа с созданным бронированием и занятым слотом
type Response struct {
	BookingID     int64     // ID созданного бронирования
	ServiceID     int64     // ID услуги
	SlotID        int64     // ID слота
	SlotStartAt   time.Time // Время начала слота
	CustomerName  string    // Имя клиента
	CustomerEmail string    // Нормализованный email клиента
	Status        string    // Статус бронирования (CONFIRMED)
	CreatedAt     time.Time // Время создания
}
