package venueservice

import "errors"

var (
	// ErrVenueNotFound возвращается, когда площадка не найдена в каталоге
	ErrVenueNotFound = errors.New("venueservice: venue not found")

	// ErrInvalidResponse возвращается при некорректном ответе VenueService
	ErrInvalidResponse = errors.New("venueservice: invalid response")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("venueservice: internal error")
)
