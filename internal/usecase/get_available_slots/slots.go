package get_available_slots

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-VenueService/internal/domain"
	"github.com/m04kA/SMC-VenueService/internal/integrations/venueservice"
)

// generateCandidateSlots генерирует все возможные слоты площадки за диапазон дат
//
// Для каждого дня диапазона рабочее окно площадки нарезается на последовательные
// слоты фиксированной длительности начиная со времени открытия. Неполный слот
// в конце окна отбрасывается. Слоты, начинающиеся в прошлом относительно now,
// не генерируются
//
// Окно, переходящее через полночь (open 22:00, close 02:00), нормализуется
// прибавлением суток ко времени закрытия
func generateCandidateSlots(
	venueID int64,
	hours venueservice.WeeklyHours,
	from time.Time,
	to time.Time,
	slotDuration time.Duration,
	now time.Time,
) ([]domain.TimeSlot, error) {
	slotMinutes := int(slotDuration / time.Minute)

	slots := make([]domain.TimeSlot, 0)

	for day := startOfDay(from); !day.After(startOfDay(to)); day = day.AddDate(0, 0, 1) {
		schedule := hours.ForWeekday(day.Weekday())
		if !schedule.IsOpen || schedule.OpenTime == nil || schedule.CloseTime == nil {
			continue
		}

		openMinutes, err := schedule.OpenTime.Minutes()
		if err != nil {
			return nil, fmt.Errorf("parse open time: %w", err)
		}

		closeMinutes, err := schedule.CloseTime.Minutes()
		if err != nil {
			return nil, fmt.Errorf("parse close time: %w", err)
		}

		// Нормализация окна, переходящего через полночь
		if closeMinutes <= openMinutes {
			closeMinutes += domain.MinutesPerDay
		}

		for cursor := openMinutes; cursor+slotMinutes <= closeMinutes; cursor += slotMinutes {
			start := day.Add(time.Duration(cursor) * time.Minute)
			if start.Before(now) {
				continue
			}

			slots = append(slots, domain.TimeSlot{
				VenueID:   venueID,
				StartTime: start,
				EndTime:   start.Add(slotDuration),
			})
		}
	}

	return slots, nil
}

// filterAvailable отбрасывает слоты, пересекающиеся хотя бы с одним
// активным (pending или confirmed) бронированием
//
// Полуоткрытые интервалы [a,b) и [c,d) пересекаются, только если a < d и c < b:
// бронирование, заканчивающееся ровно в начале слота, слот не блокирует.
// Фильтр чистый - безопасен для параллельных вызовов по разным площадкам
func filterAvailable(slots []domain.TimeSlot, bookings []*domain.Booking) []domain.TimeSlot {
	available := make([]domain.TimeSlot, 0, len(slots))

	for _, slot := range slots {
		blocked := false
		for _, b := range bookings {
			if !b.IsActive() {
				continue
			}
			if b.Overlaps(slot.StartTime, slot.EndTime) {
				blocked = true
				break
			}
		}
		if !blocked {
			available = append(available, slot)
		}
	}

	return available
}

// startOfDay обнуляет время, оставляя только дату
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
