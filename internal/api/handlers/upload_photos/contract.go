package upload_photos

import (
	"context"

	"github.com/m04kA/HappyStay-BookingService/internal/domain"
)

type PhotoService interface {
	Upload(ctx context.Context, files []domain.PhotoUpload) ([]domain.Photo, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
