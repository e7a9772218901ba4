package get_available_slots

import "time"

// Request модель запроса на получение доступных слотов
type Request struct {
	VenueID int64     // ID площадки
	From    time.Time // Первый день диапазона (включительно)
	To      time.Time // Последний день диапазона (включительно)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	VenueID int64  // ID площадки
	From    time.Time
	To      time.Time
	Slots   []Slot // Доступные слоты в хронологическом порядке
}

// Slot модель временного слота
type Slot struct {
	StartTime time.Time // Начало слота
	EndTime   time.Time // Конец слота
}
