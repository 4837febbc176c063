package admin

import "errors"

var (
	// ErrInvalidSlotID возвращается, если идентификатор слота не разбирается на дату и время
	ErrInvalidSlotID = errors.New("admin: invalid slot id")

	// ErrUnsupportedSlotStatus возвращается для статусов слота кроме blocked/available
	ErrUnsupportedSlotStatus = errors.New("admin: unsupported slot status")

	// ErrReservationNotFound возвращается, когда резервация не найдена
	ErrReservationNotFound = errors.New("admin: reservation not found")

	// ErrInvalidStatus возвращается при неизвестном статусе резервации
	ErrInvalidStatus = errors.New("admin: invalid reservation status")

	// ErrInvalidTransition возвращается при запрещенном переходе статуса
	ErrInvalidTransition = errors.New("admin: invalid status transition")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("admin: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("admin: internal error")
)
