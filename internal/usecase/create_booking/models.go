package create_booking

import "time"

// Request модель запроса на создание бронирования
type Request struct {
	OrganizerID     int64     // ID организатора (уже аутентифицирован снаружи)
	VenueID         int64     // ID площадки
	StartTime       time.Time // Начало слота
	EndTime         time.Time // Конец слота
	AttendeeCount   int       // Число участников
	Purpose         string    // Цель мероприятия
	SpecialRequests *string   // Особые пожелания (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID          int64
	Reference   string
	VenueID     int64
	OrganizerID int64

	StartTime time.Time
	EndTime   time.Time

	AttendeeCount   int
	Purpose         string
	SpecialRequests *string

	Status        string
	PaymentStatus string

	// Разбивка цены, зафиксированная при создании
	HourlyRate float64
	Hours      int
	Subtotal   float64
	ServiceFee float64
	Tax        float64
	Total      float64

	CreatedAt       time.Time
	StatusChangedAt time.Time
}
