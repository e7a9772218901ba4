package venueservice

import (
	"time"

	"github.com/m04kA/SMC-VenueService/pkg/types"
)

// Venue площадка из каталога VenueService
// Движок бронирования использует её только на чтение
type Venue struct {
	ID            int64        `json:"id"`
	Name          string       `json:"name"`
	HourlyRate    float64      `json:"hourlyRate"`
	Capacity      int          `json:"capacity"`
	OwnerID       int64        `json:"ownerId"`
	ManagerIDs    []int64      `json:"managerIds"`
	OperatingHours WeeklyHours `json:"operatingHours"`
}

// IsManagedBy проверяет, что пользователь является владельцем или менеджером площадки
func (v *Venue) IsManagedBy(userID int64) bool {
	if v.OwnerID == userID {
		return true
	}
	for _, id := range v.ManagerIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// WeeklyHours недельное расписание работы площадки
// Отсутствующий день (IsOpen=false) означает, что площадка закрыта
type WeeklyHours struct {
	Monday    DaySchedule `json:"monday"`
	Tuesday   DaySchedule `json:"tuesday"`
	Wednesday DaySchedule `json:"wednesday"`
	Thursday  DaySchedule `json:"thursday"`
	Friday    DaySchedule `json:"friday"`
	Saturday  DaySchedule `json:"saturday"`
	Sunday    DaySchedule `json:"sunday"`
}

// ForWeekday возвращает расписание на указанный день недели
func (w WeeklyHours) ForWeekday(weekday time.Weekday) DaySchedule {
	switch weekday {
	case time.Monday:
		return w.Monday
	case time.Tuesday:
		return w.Tuesday
	case time.Wednesday:
		return w.Wednesday
	case time.Thursday:
		return w.Thursday
	case time.Friday:
		return w.Friday
	case time.Saturday:
		return w.Saturday
	default:
		return w.Sunday
	}
}

// DaySchedule расписание работы площадки на один день недели
// OpenTime и CloseTime - локальное время дня площадки в формате HH:MM
// Окно, переходящее через полночь (open 22:00, close 02:00), допустимо
type DaySchedule struct {
	IsOpen    bool              `json:"isOpen"`
	OpenTime  *types.TimeString `json:"openTime,omitempty"`
	CloseTime *types.TimeString `json:"closeTime,omitempty"`
}
