package cancel_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("cancel_booking: booking not found")

	// ErrAlreadyCanceled возвращается при повторной отмене
	ErrAlreadyCanceled = errors.New("cancel_booking: booking is already canceled")

	// ErrTooLateToCancel возвращается, когда слот бронирования уже начался
	ErrTooLateToCancel = errors.New("cancel_booking: slot start time is already in the past")

	// ErrUnauthorized возвращается клиентскому пути отмены при несовпадении
	// email. Одинаков для «чужого» и несуществующего бронирования, чтобы не
	// раскрывать, существует ли оно.
	ErrUnauthorized = errors.New("cancel_booking: email does not match this booking")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("cancel_booking: invalid input data")

	// ErrInternal возвращается при ошибках хранилища и прочих внутренних сбоях
	ErrInternal = errors.New("cancel_booking: internal error")
)
