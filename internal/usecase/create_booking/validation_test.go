package create_booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-VenueService/internal/integrations/venueservice"
	"github.com/m04kA/SMC-VenueService/pkg/types"
)

func openDay(open, close string) venueservice.DaySchedule {
	o := types.TimeString(open)
	c := types.TimeString(close)
	return venueservice.DaySchedule{IsOpen: true, OpenTime: &o, CloseTime: &c}
}

// monday 2026-09-14 - понедельник
var monday = time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)

func TestValidateSlot(t *testing.T) {
	hours := venueservice.WeeklyHours{
		Monday: openDay("09:00", "22:00"),
	}
	past := monday.Add(-24 * time.Hour)
	slotDuration := 4 * time.Hour

	tests := []struct {
		name    string
		start   time.Time
		end     time.Time
		wantErr bool
	}{
		{"first slot", monday.Add(9 * time.Hour), monday.Add(13 * time.Hour), false},
		{"second slot", monday.Add(13 * time.Hour), monday.Add(17 * time.Hour), false},
		{"third slot", monday.Add(17 * time.Hour), monday.Add(21 * time.Hour), false},
		// Произвольные интервалы не на сетке
		{"off grid start", monday.Add(10 * time.Hour), monday.Add(14 * time.Hour), true},
		{"before opening", monday.Add(5 * time.Hour), monday.Add(9 * time.Hour), true},
		{"past closing", monday.Add(19 * time.Hour), monday.Add(23 * time.Hour), true},
		// Длительность должна совпадать со слотом
		{"too short", monday.Add(9 * time.Hour), monday.Add(11 * time.Hour), true},
		{"too long", monday.Add(9 * time.Hour), monday.Add(17 * time.Hour), true},
		// Закрытый день
		{"closed day", monday.AddDate(0, 0, 1).Add(9 * time.Hour), monday.AddDate(0, 0, 1).Add(13 * time.Hour), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateSlot(hours, tt.start, tt.end, slotDuration, past)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidSlot)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateSlot_PastStart(t *testing.T) {
	hours := venueservice.WeeklyHours{
		Monday: openDay("09:00", "22:00"),
	}

	now := monday.Add(10 * time.Hour)
	err := validateSlot(hours, monday.Add(9*time.Hour), monday.Add(13*time.Hour), 4*time.Hour, now)
	assert.ErrorIs(t, err, ErrInvalidSlot)
}

func TestValidateSlot_MidnightCrossing(t *testing.T) {
	hours := venueservice.WeeklyHours{
		Monday: openDay("22:00", "02:00"),
	}
	past := monday.Add(-24 * time.Hour)
	tuesday := monday.AddDate(0, 0, 1)

	// Слот 22:00 понедельника заканчивается в 02:00 вторника
	err := validateSlot(hours, monday.Add(22*time.Hour), tuesday.Add(2*time.Hour), 4*time.Hour, past)
	assert.NoError(t, err)

	// Вторник закрыт, его собственной сетки нет
	err = validateSlot(hours, tuesday.Add(22*time.Hour), tuesday.AddDate(0, 0, 1).Add(2*time.Hour), 4*time.Hour, past)
	assert.ErrorIs(t, err, ErrInvalidSlot)
}

func TestValidateRequest(t *testing.T) {
	valid := func() *Request {
		return &Request{
			OrganizerID:   7,
			VenueID:       42,
			StartTime:     monday.Add(9 * time.Hour),
			EndTime:       monday.Add(13 * time.Hour),
			AttendeeCount: 10,
			Purpose:       "corporate offsite",
		}
	}

	assert.NoError(t, validateRequest(valid()))

	tests := []struct {
		name   string
		mutate func(r *Request)
	}{
		{"missing organizer", func(r *Request) { r.OrganizerID = 0 }},
		{"missing venue", func(r *Request) { r.VenueID = 0 }},
		{"zero start", func(r *Request) { r.StartTime = time.Time{} }},
		{"end before start", func(r *Request) { r.EndTime = r.StartTime.Add(-time.Hour) }},
		{"zero attendees", func(r *Request) { r.AttendeeCount = 0 }},
		{"empty purpose", func(r *Request) { r.Purpose = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid()
			tt.mutate(req)
			assert.ErrorIs(t, validateRequest(req), ErrInvalidInput)
		})
	}
}

func TestNewReference(t *testing.T) {
	first := newReference()
	second := newReference()

	assert.Regexp(t, `^VB-[0-9A-F]{12}$`, first)
	assert.NotEqual(t, first, second)
}
