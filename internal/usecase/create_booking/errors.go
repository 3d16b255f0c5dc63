package create_booking

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrServiceNotBookable возвращается, когда услуга не принимает бронирования
	ErrServiceNotBookable = errors.New("create_booking: service is not bookable")

	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("create_booking: slot not found")

	// ErrSlotMismatch возвращается, когда слот принадлежит другой услуге
	ErrSlotMismatch = errors.New("create_booking: slot does not belong to the given service")

	// ErrSlotExpired возвращается, когда время начала слота уже в прошлом
	ErrSlotExpired = errors.New("create_booking: slot start time is in the past")

	// ErrSlotNotAvailable возвращается, когда слот уже занят или заблокирован
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при ошибках хранилища и прочих внутренних сбоях;
	// бизнес-ошибки им никогда не маскируются
	ErrInternal = errors.New("create_booking: internal error")
)
