package cancel_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/AgendaLite-BookingService/internal/api/handlers"
	cancelBooking "github.com/m04kA/AgendaLite-BookingService/internal/usecase/cancel_booking"
)

const (
	msgInvalidBookingID   = "ID de reserva no válido"
	msgInvalidRequestBody = "cuerpo de la solicitud no válido"
	msgUnauthorized       = "no se pudo verificar la reserva con ese correo"
	msgAlreadyCanceled    = "la reserva ya está cancelada"
	msgTooLateToCancel    = "la cita ya pasó, no se puede cancelar"
	msgInvalidInput       = "datos de la solicitud no válidos"
)

type Handler struct {
	useCase CancelBookingUseCase
	logger  Logger
}

func NewHandler(useCase CancelBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/cancel - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req CancelBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.ExecuteForCustomer(r.Context(), bookingID, req.CustomerEmail)
	if err != nil {
		switch {
		case errors.Is(err, cancelBooking.ErrUnauthorized):
			// Не раскрываем, существует ли бронирование
			h.logger.Warn("POST /bookings/{id}/cancel - Unauthorized: booking_id=%d", bookingID)
			handlers.RespondForbidden(w, msgUnauthorized)

		case errors.Is(err, cancelBooking.ErrAlreadyCanceled):
			h.logger.Warn("POST /bookings/{id}/cancel - Already canceled: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgAlreadyCanceled)

		case errors.Is(err, cancelBooking.ErrTooLateToCancel):
			h.logger.Warn("POST /bookings/{id}/cancel - Too late to cancel: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgTooLateToCancel)

		case errors.Is(err, cancelBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings/{id}/cancel - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings/{id}/cancel - Failed to cancel booking: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/cancel - Booking canceled successfully: booking_id=%d", bookingID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
