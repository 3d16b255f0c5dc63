package create_booking_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	handler "github.com/m04kA/AgendaLite-BookingService/internal/api/handlers/create_booking"
	createBooking "github.com/m04kA/AgendaLite-BookingService/internal/usecase/create_booking"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type stubUseCase struct {
	resp  *createBooking.Response
	err   error
	calls int
	got   *createBooking.Request
}

func (s *stubUseCase) Execute(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	s.calls++
	s.got = req
	return s.resp, s.err
}

func validBody(t *testing.T) *bytes.Buffer {
	t.Helper()
	body, err := json.Marshal(map[string]interface{}{
		"serviceId":     10,
		"slotId":        42,
		"customerName":  "Ana García",
		"customerEmail": "ana@example.com",
	})
	require.NoError(t, err)
	return bytes.NewBuffer(body)
}

func doRequest(t *testing.T, uc *stubUseCase, body *bytes.Buffer) *httptest.ResponseRecorder {
	t.Helper()
	h := handler.NewHandler(uc, nopLogger{})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", body)
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestCreateBookingHandlerSuccess(t *testing.T) {
	startAt := time.Date(2025, 6, 15, 14, 0, 0, 0, time.UTC)
	uc := &stubUseCase{resp: &createBooking.Response{
		BookingID:     501,
		ServiceID:     10,
		SlotID:        42,
		SlotStartAt:   startAt,
		CustomerName:  "Ana García",
		CustomerEmail: "ana@example.com",
		Status:        "CONFIRMED",
		CreatedAt:     startAt.Add(-2 * time.Hour),
	}}

	rec := doRequest(t, uc, validBody(t))
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp handler.BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(501), resp.BookingID)
	assert.Equal(t, "2025-06-15T14:00:00Z", resp.SlotStartAt)
	assert.Equal(t, "CONFIRMED", resp.Status)

	require.Equal(t, 1, uc.calls)
	assert.Equal(t, int64(10), uc.got.ServiceID)
	assert.Equal(t, int64(42), uc.got.SlotID)
}

func TestCreateBookingHandlerFormValidation(t *testing.T) {
	body, err := json.Marshal(map[string]interface{}{
		"serviceId":     10,
		"slotId":        42,
		"customerName":  "",
		"customerEmail": "no-es-un-correo",
	})
	require.NoError(t, err)

	uc := &stubUseCase{}
	rec := doRequest(t, uc, bytes.NewBuffer(body))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp handler.ValidationErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Fields, "customerName")
	assert.Contains(t, resp.Fields, "customerEmail")

	// До use case запрос не дошёл
	assert.Equal(t, 0, uc.calls)
}

func TestCreateBookingHandlerMalformedBody(t *testing.T) {
	uc := &stubUseCase{}
	rec := doRequest(t, uc, bytes.NewBufferString("{not json"))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, uc.calls)
}

func TestCreateBookingHandlerUnknownFieldRejected(t *testing.T) {
	body, err := json.Marshal(map[string]interface{}{
		"serviceId":     10,
		"slotId":        42,
		"customerName":  "Ana",
		"customerEmail": "ana@example.com",
		"releaseSlot":   true,
	})
	require.NoError(t, err)

	uc := &stubUseCase{}
	rec := doRequest(t, uc, bytes.NewBuffer(body))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, uc.calls)
}

func TestCreateBookingHandlerErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"service not found", createBooking.ErrServiceNotFound, http.StatusNotFound},
		{"service not bookable", createBooking.ErrServiceNotBookable, http.StatusBadRequest},
		{"slot not found", createBooking.ErrSlotNotFound, http.StatusNotFound},
		{"slot mismatch", createBooking.ErrSlotMismatch, http.StatusBadRequest},
		{"slot expired", createBooking.ErrSlotExpired, http.StatusBadRequest},
		{"slot not available", createBooking.ErrSlotNotAvailable, http.StatusConflict},
		{"invalid input", createBooking.ErrInvalidInput, http.StatusBadRequest},
		{"internal error", createBooking.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, &stubUseCase{err: tt.err}, validBody(t))
			assert.Equal(t, tt.wantStatus, rec.Code)

			var resp map[string]interface{}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp["error"])
		})
	}
}
