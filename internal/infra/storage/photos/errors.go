package photos

import "errors"

var (
	// ErrUnsupportedType тип файла не входит в список разрешенных
	ErrUnsupportedType = errors.New("photos.store: unsupported image type")

	// ErrInvalidImage содержимое не декодируется как изображение
	ErrInvalidImage = errors.New("photos.store: invalid image")

	// ErrWriteFile ошибка записи на диск
	ErrWriteFile = errors.New("photos.store: failed to write file")
)
