package reservation

import "errors"

var (
	// ErrReservationTimeout возвращается, когда эксклюзивная секция площадки
	// не была получена за отведенное время ожидания
	ErrReservationTimeout = errors.New("reservation: timed out waiting for venue reservation section")
)
