package create_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-VenueService/internal/domain"
	"github.com/m04kA/SMC-VenueService/internal/integrations/venueservice"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.OrganizerID <= 0 {
		return fmt.Errorf("%w: organizerID must be positive", ErrInvalidInput)
	}

	if req.VenueID <= 0 {
		return fmt.Errorf("%w: venueID must be positive", ErrInvalidInput)
	}

	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		return fmt.Errorf("%w: startTime and endTime are required", ErrInvalidInput)
	}

	if !req.EndTime.After(req.StartTime) {
		return fmt.Errorf("%w: endTime must be after startTime", ErrInvalidInput)
	}

	if req.AttendeeCount <= 0 {
		return fmt.Errorf("%w: attendeeCount must be positive", ErrInvalidInput)
	}

	if req.Purpose == "" {
		return fmt.Errorf("%w: purpose is required", ErrInvalidInput)
	}

	if len(req.Purpose) > domain.MaxPurposeLength {
		return fmt.Errorf("%w: purpose must not exceed %d characters", ErrInvalidInput, domain.MaxPurposeLength)
	}

	if req.SpecialRequests != nil && len(*req.SpecialRequests) > domain.MaxSpecialRequestsLength {
		return fmt.Errorf("%w: specialRequests must not exceed %d characters", ErrInvalidInput, domain.MaxSpecialRequestsLength)
	}

	return nil
}

// validateSlot проверяет, что запрошенный интервал в точности совпадает
// с одним из слотов, которые генератор слотов предложил бы для этой площадки
//
// Интервал валиден, если он лежит в рабочем окне дня, начинается на границе
// сетки слотов (смещение от открытия кратно длительности слота) и его длина
// равна длительности слота. Произвольные интервалы не принимаются.
// Слоты, начинающиеся в прошлом, не предлагаются, поэтому и не бронируются
func validateSlot(
	hours venueservice.WeeklyHours,
	start time.Time,
	end time.Time,
	slotDuration time.Duration,
	now time.Time,
) error {
	if end.Sub(start) != slotDuration {
		return fmt.Errorf("%w: interval length %s does not match slot duration %s",
			ErrInvalidSlot, end.Sub(start), slotDuration)
	}

	if start.Before(now) {
		return fmt.Errorf("%w: slot start is in the past", ErrInvalidSlot)
	}

	// Слот может принадлежать окну дня своего начала либо окну предыдущего дня,
	// переходящему через полночь
	day := startOfDay(start)
	offset := int(start.Sub(day) / time.Minute)

	if slotOnDay(hours, day, offset, slotDuration) {
		return nil
	}
	if slotOnDay(hours, day.AddDate(0, 0, -1), offset+domain.MinutesPerDay, slotDuration) {
		return nil
	}

	return fmt.Errorf("%w: interval is not on the venue slot grid", ErrInvalidSlot)
}

// slotOnDay проверяет, что слот со смещением offset минут от начала дня day
// попадает на сетку рабочего окна этого дня
func slotOnDay(hours venueservice.WeeklyHours, day time.Time, offset int, slotDuration time.Duration) bool {
	schedule := hours.ForWeekday(day.Weekday())
	if !schedule.IsOpen || schedule.OpenTime == nil || schedule.CloseTime == nil {
		return false
	}

	openMinutes, err := schedule.OpenTime.Minutes()
	if err != nil {
		return false
	}

	closeMinutes, err := schedule.CloseTime.Minutes()
	if err != nil {
		return false
	}

	// Нормализация окна, переходящего через полночь
	if closeMinutes <= openMinutes {
		closeMinutes += domain.MinutesPerDay
	}

	slotMinutes := int(slotDuration / time.Minute)

	if offset < openMinutes || offset+slotMinutes > closeMinutes {
		return false
	}

	return (offset-openMinutes)%slotMinutes == 0
}

// countOverlapping подсчитывает активные бронирования, пересекающиеся с интервалом
// Полуоткрытые интервалы: граничащие бронирования пересечением не считаются
func countOverlapping(start, end time.Time, bookings []*domain.Booking) int {
	count := 0
	for _, b := range bookings {
		if !b.IsActive() {
			continue
		}
		if b.Overlaps(start, end) {
			count++
		}
	}
	return count
}

// startOfDay обнуляет время, оставляя только дату
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
