package cart

import "errors"

var (
	// ErrCartFull возвращается при попытке добавить строку сверх лимита
	ErrCartFull = errors.New("cart.service: cart is full")

	// ErrItemNotFound возвращается, когда строки с таким ID нет в корзине
	ErrItemNotFound = errors.New("cart.service: item not found")

	// ErrUnknownService возвращается для типа услуги вне списка разрешенных
	ErrUnknownService = errors.New("cart.service: unknown service type")

	// ErrItemIncomplete возвращается при подтверждении незаполненной строки
	ErrItemIncomplete = errors.New("cart.service: item is incomplete")
)
