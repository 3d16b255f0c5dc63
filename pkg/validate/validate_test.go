package validate_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/AgendaLite-BookingService/pkg/validate"
)

const (
	maxNameLen  = 120
	maxEmailLen = 254
)

func TestBookingFormValid(t *testing.T) {
	errs := validate.BookingForm("Ana García", "ana@example.com", maxNameLen, maxEmailLen)
	assert.True(t, errs.Empty())
}

func TestBookingFormFieldErrors(t *testing.T) {
	tests := []struct {
		name      string
		formName  string
		formEmail string
		wantField string
	}{
		{"empty name", "", "ana@example.com", "customerName"},
		{"whitespace-only name", "   ", "ana@example.com", "customerName"},
		{"too long name", strings.Repeat("a", maxNameLen+1), "ana@example.com", "customerName"},
		{"empty email", "Ana", "", "customerEmail"},
		{"too long email", "Ana", strings.Repeat("a", maxEmailLen) + "@example.com", "customerEmail"},
		{"email without at", "Ana", "ana.example.com", "customerEmail"},
		{"email without domain dot", "Ana", "ana@example", "customerEmail"},
		{"email with spaces", "Ana", "ana garcia@example.com", "customerEmail"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := validate.BookingForm(tt.formName, tt.formEmail, maxNameLen, maxEmailLen)
			assert.False(t, errs.Empty())
			assert.Contains(t, errs, tt.wantField)
		})
	}
}

func TestBookingFormCollectsBothFields(t *testing.T) {
	errs := validate.BookingForm("", "no-es-un-correo", maxNameLen, maxEmailLen)
	assert.Len(t, errs, 2)
	assert.Contains(t, errs, "customerName")
	assert.Contains(t, errs, "customerEmail")
}

func TestFieldErrorsAddKeepsFirst(t *testing.T) {
	errs := validate.FieldErrors{}
	errs.Add("customerName", "primero")
	errs.Add("customerName", "segundo")
	assert.Equal(t, "primero", errs["customerName"])
}

func TestEmailValid(t *testing.T) {
	assert.True(t, validate.EmailValid("ana@example.com"))
	assert.True(t, validate.EmailValid("ana+citas@sub.example.co"))
	assert.False(t, validate.EmailValid("ana@example"))
	assert.False(t, validate.EmailValid("@example.com"))
	assert.False(t, validate.EmailValid(""))
}
