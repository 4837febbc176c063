package photos

import (
	"context"

	"github.com/m04kA/HappyStay-BookingService/internal/domain"
)

// DataLayer интерфейс слоя данных для сохранения фото
type DataLayer interface {
	UploadPhotos(ctx context.Context, files []domain.PhotoUpload) ([]domain.Photo, error)
}

// Metrics счетчики загрузок
type Metrics interface {
	PhotoUploaded(contentType string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
