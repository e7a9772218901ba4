package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBooking_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name    string
		from    BookingStatus
		to      BookingStatus
		allowed bool
	}{
		{"pending to confirmed", StatusPending, StatusConfirmed, true},
		{"pending to cancelled", StatusPending, StatusCancelled, true},
		{"confirmed to cancelled", StatusConfirmed, StatusCancelled, true},
		{"confirmed to completed", StatusConfirmed, StatusCompleted, true},
		// Переходы только вперёд
		{"pending to completed", StatusPending, StatusCompleted, false},
		{"confirmed to pending", StatusConfirmed, StatusPending, false},
		// Терминальные статусы
		{"cancelled to pending", StatusCancelled, StatusPending, false},
		{"cancelled to confirmed", StatusCancelled, StatusConfirmed, false},
		{"completed to cancelled", StatusCompleted, StatusCancelled, false},
		{"completed to confirmed", StatusCompleted, StatusConfirmed, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &Booking{Status: tt.from}
			assert.Equal(t, tt.allowed, b.CanTransitionTo(tt.to))
		})
	}
}

func TestBooking_IsActive(t *testing.T) {
	assert.True(t, (&Booking{Status: StatusPending}).IsActive())
	assert.True(t, (&Booking{Status: StatusConfirmed}).IsActive())
	assert.False(t, (&Booking{Status: StatusCancelled}).IsActive())
	assert.False(t, (&Booking{Status: StatusCompleted}).IsActive())
}

func TestBooking_IsTerminal(t *testing.T) {
	assert.False(t, (&Booking{Status: StatusPending}).IsTerminal())
	assert.False(t, (&Booking{Status: StatusConfirmed}).IsTerminal())
	assert.True(t, (&Booking{Status: StatusCancelled}).IsTerminal())
	assert.True(t, (&Booking{Status: StatusCompleted}).IsTerminal())
}

func TestBooking_Overlaps(t *testing.T) {
	base := time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC)
	booking := &Booking{
		StartTime: base,
		EndTime:   base.Add(4 * time.Hour),
	}

	tests := []struct {
		name     string
		start    time.Time
		end      time.Time
		overlaps bool
	}{
		{"identical interval", base, base.Add(4 * time.Hour), true},
		{"contained interval", base.Add(time.Hour), base.Add(2 * time.Hour), true},
		{"partial overlap at start", base.Add(-time.Hour), base.Add(time.Hour), true},
		{"partial overlap at end", base.Add(3 * time.Hour), base.Add(5 * time.Hour), true},
		// Полуоткрытые интервалы: граничащие не пересекаются
		{"adjacent before", base.Add(-4 * time.Hour), base, false},
		{"adjacent after", base.Add(4 * time.Hour), base.Add(8 * time.Hour), false},
		{"disjoint", base.Add(10 * time.Hour), base.Add(12 * time.Hour), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.overlaps, booking.Overlaps(tt.start, tt.end))
		})
	}
}

func TestBooking_IsFinished(t *testing.T) {
	end := time.Date(2026, 9, 14, 14, 0, 0, 0, time.UTC)
	b := &Booking{EndTime: end}

	assert.False(t, b.IsFinished(end.Add(-time.Minute)))
	assert.True(t, b.IsFinished(end))
	assert.True(t, b.IsFinished(end.Add(time.Minute)))
}

func TestValidStatus(t *testing.T) {
	assert.True(t, ValidStatus(StatusPending))
	assert.True(t, ValidStatus(StatusConfirmed))
	assert.True(t, ValidStatus(StatusCancelled))
	assert.True(t, ValidStatus(StatusCompleted))
	assert.False(t, ValidStatus("unknown"))
	assert.False(t, ValidStatus(""))
}
