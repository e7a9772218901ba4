package quote_price

import "errors"

var (
	// ErrVenueNotFound возвращается, когда площадка не найдена
	ErrVenueNotFound = errors.New("quote_price: venue not found")

	// ErrInvalidDuration возвращается, когда интервал не является
	// положительным целым числом часов
	ErrInvalidDuration = errors.New("quote_price: invalid booking duration")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("quote_price: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("quote_price: internal error")
)
