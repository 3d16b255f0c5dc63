package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/AgendaLite-BookingService/internal/api/handlers"
	"github.com/m04kA/AgendaLite-BookingService/internal/domain"
	createBooking "github.com/m04kA/AgendaLite-BookingService/internal/usecase/create_booking"
	"github.com/m04kA/AgendaLite-BookingService/pkg/validate"
)

const (
	msgInvalidRequestBody = "cuerpo de la solicitud no válido"
	msgInvalidForm        = "revisa los campos del formulario"
	msgServiceNotFound    = "servicio no encontrado"
	msgServiceNotBookable = "el servicio no está disponible para reservas"
	msgSlotNotFound       = "horario no encontrado"
	msgSlotMismatch       = "el horario no pertenece al servicio indicado"
	msgSlotExpired        = "no se puede reservar un horario en el pasado"
	msgSlotNotAvailable   = "este horario ya no está disponible"
	msgInvalidInput       = "datos de la reserva no válidos"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Проверка формы: ошибки по полям возвращаются все сразу
	if fieldErrs := validate.BookingForm(
		req.CustomerName,
		req.CustomerEmail,
		domain.MaxCustomerNameLength,
		domain.MaxCustomerEmailLength,
	); !fieldErrs.Empty() {
		h.logger.Warn("POST /bookings - Form validation failed: %d field error(s)", len(fieldErrs))
		handlers.RespondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Error:  msgInvalidForm,
			Fields: fieldErrs,
		})
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("POST /bookings - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrServiceNotBookable):
			h.logger.Warn("POST /bookings - Service not bookable: service_id=%d", req.ServiceID)
			handlers.RespondBadRequest(w, msgServiceNotBookable)

		case errors.Is(err, createBooking.ErrSlotNotFound):
			h.logger.Warn("POST /bookings - Slot not found: slot_id=%d", req.SlotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, createBooking.ErrSlotMismatch):
			h.logger.Warn("POST /bookings - Slot mismatch: service_id=%d, slot_id=%d", req.ServiceID, req.SlotID)
			handlers.RespondBadRequest(w, msgSlotMismatch)

		case errors.Is(err, createBooking.ErrSlotExpired):
			h.logger.Warn("POST /bookings - Slot expired: slot_id=%d", req.SlotID)
			handlers.RespondBadRequest(w, msgSlotExpired)

		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: slot_id=%d", req.SlotID)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: service_id=%d, slot_id=%d, error=%v",
				req.ServiceID, req.SlotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, slot_id=%d",
		result.BookingID, result.SlotID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
