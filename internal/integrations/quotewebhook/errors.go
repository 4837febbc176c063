package quotewebhook

import "errors"

var (
	// ErrDisabled возвращается, когда URL вебхука не настроен
	ErrDisabled = errors.New("quotewebhook client: delivery disabled")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("quotewebhook client: internal error")

	// ErrInvalidResponse возвращается при неуспешном ответе вебхука
	ErrInvalidResponse = errors.New("quotewebhook client: invalid response")
)
