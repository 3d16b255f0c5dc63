package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/AgendaLite-BookingService/internal/domain"
)

func TestTimeSlotIsInFuture(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		startAt time.Time
		want    bool
	}{
		{"one hour ahead", now.Add(time.Hour), true},
		{"exactly now", now, true},
		{"one second ago", now.Add(-time.Second), false},
		{"yesterday", now.AddDate(0, 0, -1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slot := &domain.TimeSlot{StartAt: tt.startAt}
			assert.Equal(t, tt.want, slot.IsInFuture(now))
		})
	}
}

func TestTimeSlotIsAvailable(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	future := now.Add(time.Hour)
	past := now.Add(-time.Hour)

	tests := []struct {
		name    string
		startAt time.Time
		status  domain.SlotStatus
		want    bool
	}{
		{"available in the future", future, domain.SlotAvailable, true},
		{"available but in the past", past, domain.SlotAvailable, false},
		{"booked in the future", future, domain.SlotBooked, false},
		{"blocked in the future", future, domain.SlotBlocked, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slot := &domain.TimeSlot{StartAt: tt.startAt, Status: tt.status}
			assert.Equal(t, tt.want, slot.IsAvailable(now))
		})
	}
}

func TestTimeSlotIsBooked(t *testing.T) {
	assert.True(t, (&domain.TimeSlot{Status: domain.SlotBooked}).IsBooked())
	assert.False(t, (&domain.TimeSlot{Status: domain.SlotAvailable}).IsBooked())
	assert.False(t, (&domain.TimeSlot{Status: domain.SlotBlocked}).IsBooked())
}

func TestServiceCanBeBooked(t *testing.T) {
	assert.True(t, (&domain.Service{IsActive: true}).CanBeBooked())
	assert.False(t, (&domain.Service{IsActive: false}).CanBeBooked())
}
