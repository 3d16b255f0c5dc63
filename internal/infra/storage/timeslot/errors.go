package timeslot

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("timeslot.repository: slot not found")

	// ErrSlotNotAvailable возвращается, когда слот не удалось перевести
	// в состояние BOOKED, потому что он уже не AVAILABLE
	ErrSlotNotAvailable = errors.New("timeslot.repository: slot not available")

	// ErrSlotNotBooked возвращается, когда слот не удалось вернуть
	// в состояние AVAILABLE, потому что он не BOOKED
	ErrSlotNotBooked = errors.New("timeslot.repository: slot not booked")

	// ErrSlotAlreadyExists возвращается при нарушении уникальности (service_id, start_at)
	ErrSlotAlreadyExists = errors.New("timeslot.repository: slot already exists for this service and time")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("timeslot.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("timeslot.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("timeslot.repository: failed to scan row")
)
