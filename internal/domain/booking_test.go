package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/AgendaLite-BookingService/internal/domain"
)

func TestBookingEmailMatches(t *testing.T) {
	booking := &domain.Booking{CustomerEmail: "Ana.Garcia@example.com"}

	tests := []struct {
		name  string
		email string
		want  bool
	}{
		{"exact match", "Ana.Garcia@example.com", true},
		{"different case", "ana.garcia@EXAMPLE.COM", true},
		{"surrounding whitespace", "  ana.garcia@example.com\t", true},
		{"different address", "otra@example.com", false},
		{"empty email", "", false},
		{"prefix only", "ana.garcia@example", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, booking.EmailMatches(tt.email))
		})
	}
}

func TestBookingEmailMatchesStoredWithWhitespace(t *testing.T) {
	// Обе стороны сравнения нормализуются, не только входная
	booking := &domain.Booking{CustomerEmail: " Ana@Example.com "}
	assert.True(t, booking.EmailMatches("ana@example.com"))
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "ana@example.com", domain.NormalizeEmail("  ANA@Example.COM "))
	assert.Equal(t, "", domain.NormalizeEmail("   "))
}

func TestBookingStatusChecks(t *testing.T) {
	confirmed := &domain.Booking{Status: domain.StatusConfirmed}
	canceled := &domain.Booking{Status: domain.StatusCanceled}

	assert.False(t, confirmed.IsCanceled())
	assert.True(t, confirmed.CanBeCanceled())

	assert.True(t, canceled.IsCanceled())
	assert.False(t, canceled.CanBeCanceled())
}
