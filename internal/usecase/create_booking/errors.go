package create_booking

import "errors"

var (
	// ErrVenueNotFound возвращается, когда площадка не найдена
	ErrVenueNotFound = errors.New("create_booking: venue not found")

	// ErrCapacityExceeded возвращается, когда число участников превышает вместимость площадки
	ErrCapacityExceeded = errors.New("create_booking: attendee count exceeds venue capacity")

	// ErrInvalidSlot возвращается, когда запрошенный интервал не совпадает
	// ни с одним слотом из сетки рабочих часов площадки
	ErrInvalidSlot = errors.New("create_booking: requested interval does not match an offered slot")

	// ErrVenueUnavailable возвращается, когда слот уже занят другим бронированием
	// Это ожидаемая ситуация при конкурентном спросе - клиенту следует
	// перезапросить доступные слоты и повторить попытку
	ErrVenueUnavailable = errors.New("create_booking: slot is no longer available")

	// ErrReservationTimeout возвращается, когда эксклюзивная секция площадки
	// не была получена за отведенное время
	ErrReservationTimeout = errors.New("create_booking: reservation section wait timed out")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
