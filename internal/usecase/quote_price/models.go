package quote_price

import "time"

// Request модель запроса на расчет цены
type Request struct {
	VenueID   int64     // ID площадки
	StartTime time.Time // Начало интервала
	EndTime   time.Time // Конец интервала
}

// Response модель ответа с разбивкой цены
type Response struct {
	VenueID    int64
	StartTime  time.Time
	EndTime    time.Time
	HourlyRate float64
	Hours      int
	Subtotal   float64
	ServiceFee float64
	Tax        float64
	Total      float64
}
