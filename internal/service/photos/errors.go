package photos

import "errors"

var (
	// ErrNoFiles возвращается, когда в запросе нет файлов
	ErrNoFiles = errors.New("photos.service: no files")

	// ErrTooManyPhotos возвращается при превышении максимального количества фото
	ErrTooManyPhotos = errors.New("photos.service: too many photos")

	// ErrFileTooLarge возвращается, когда файл больше допустимого размера
	ErrFileTooLarge = errors.New("photos.service: file too large")

	// ErrUnsupportedType возвращается для MIME-типа вне списка разрешенных
	ErrUnsupportedType = errors.New("photos.service: unsupported file type")

	// ErrInvalidImage возвращается, когда содержимое не декодируется как изображение
	ErrInvalidImage = errors.New("photos.service: invalid image")

	// ErrUpload возвращается при ошибке сохранения в слое данных
	ErrUpload = errors.New("photos.service: upload failed")
)
