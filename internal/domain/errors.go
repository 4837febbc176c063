package domain

import "errors"

var (
	// ErrInvalidSlotID некорректный идентификатор слота
	ErrInvalidSlotID = errors.New("domain: invalid slot id")

	// ErrInvalidStatus неизвестный статус резервации
	ErrInvalidStatus = errors.New("domain: invalid reservation status")

	// ErrInvalidTransition недопустимый переход статуса
	ErrInvalidTransition = errors.New("domain: invalid status transition")
)
