package quote

import "errors"

var (
	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("quote.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("quote.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("quote.repository: failed to scan row")

	// ErrEncode возвращается при ошибке сериализации строк сметы
	ErrEncode = errors.New("quote.repository: failed to encode items")
)
