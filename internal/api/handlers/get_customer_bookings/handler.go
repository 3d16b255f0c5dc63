package get_customer_bookings

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/m04kA/AgendaLite-BookingService/internal/api/handlers"
	"github.com/m04kA/AgendaLite-BookingService/internal/service/bookings"
	"github.com/m04kA/AgendaLite-BookingService/internal/service/bookings/models"
)

const (
	msgEmailRequired = "el parámetro email es obligatorio"
	msgInvalidQuery  = "parámetros de consulta no válidos"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/customers/bookings?email=...&status=...&from=...&to=...&limit=20&offset=0
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	email := query.Get("email")
	if email == "" {
		h.logger.Warn("GET /customers/bookings - Missing email parameter")
		handlers.RespondBadRequest(w, msgEmailRequired)
		return
	}

	req := &models.GetCustomerBookingsRequest{
		CustomerEmail: email,
	}

	if raw := query.Get("status"); raw != "" {
		req.Status = &raw
	}

	if raw := query.Get("from"); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			h.logger.Warn("GET /customers/bookings - Invalid from parameter: %q", raw)
			handlers.RespondBadRequest(w, msgInvalidQuery)
			return
		}
		req.StartFrom = &from
	}

	if raw := query.Get("to"); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			h.logger.Warn("GET /customers/bookings - Invalid to parameter: %q", raw)
			handlers.RespondBadRequest(w, msgInvalidQuery)
			return
		}
		req.StartTo = &to
	}

	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			h.logger.Warn("GET /customers/bookings - Invalid limit parameter: %q", raw)
			handlers.RespondBadRequest(w, msgInvalidQuery)
			return
		}
		req.Limit = limit
	}

	if raw := query.Get("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			h.logger.Warn("GET /customers/bookings - Invalid offset parameter: %q", raw)
			handlers.RespondBadRequest(w, msgInvalidQuery)
			return
		}
		req.Offset = offset
	}

	resp, err := h.service.GetCustomerBookings(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /customers/bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidQuery)

		default:
			h.logger.Error("GET /customers/bookings - Failed to get bookings: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromServiceResponse(resp))
}
