package photos

import (
	"context"
	"fmt"

	"github.com/m04kA/HappyStay-BookingService/internal/domain"
	photostore "github.com/m04kA/HappyStay-BookingService/internal/infra/storage/photos"
)

// Limits ограничения загрузчика
type Limits struct {
	MaxPhotos   int
	MaxFileSize int64
}

// Service проверяет фото клиента и передает их в слой данных
type Service struct {
	dataLayer DataLayer
	limits    Limits
	accepted  map[string]bool
	metrics   Metrics
	logger    Logger
}

// NewService создает сервис загрузки фото
func NewService(dataLayer DataLayer, limits Limits, metrics Metrics, logger Logger) *Service {
	if limits.MaxPhotos <= 0 {
		limits.MaxPhotos = domain.DefaultMaxPhotos
	}
	if limits.MaxFileSize <= 0 {
		limits.MaxFileSize = domain.DefaultMaxPhotoSize
	}

	accepted := make(map[string]bool, len(domain.AcceptedPhotoTypes))
	for _, ct := range domain.AcceptedPhotoTypes {
		accepted[ct] = true
	}

	return &Service{
		dataLayer: dataLayer,
		limits:    limits,
		accepted:  accepted,
		metrics:   metrics,
		logger:    logger,
	}
}

// Upload проверяет каждый файл (размер, тип, декодирование) и сохраняет пачку
// Любой невалидный файл отклоняет всю пачку
func (s *Service) Upload(ctx context.Context, files []domain.PhotoUpload) ([]domain.Photo, error) {
	if len(files) == 0 {
		return nil, ErrNoFiles
	}
	if len(files) > s.limits.MaxPhotos {
		return nil, fmt.Errorf("%w: %d files, maximum %d", ErrTooManyPhotos, len(files), s.limits.MaxPhotos)
	}

	checked := make([]domain.PhotoUpload, 0, len(files))
	for _, file := range files {
		if int64(len(file.Data)) > s.limits.MaxFileSize {
			s.logger.Warn("PhotosService: %s rejected, %d bytes", file.Name, len(file.Data))
			return nil, fmt.Errorf("%w: %s (%d bytes, maximum %d)", ErrFileTooLarge, file.Name, len(file.Data), s.limits.MaxFileSize)
		}

		contentType := photostore.DetectContentType(file.Data, file.ContentType)
		if !s.accepted[contentType] {
			s.logger.Warn("PhotosService: %s rejected, type %s", file.Name, contentType)
			return nil, fmt.Errorf("%w: %s (%s)", ErrUnsupportedType, file.Name, contentType)
		}

		if _, err := photostore.Decode(file.Data, contentType); err != nil {
			s.logger.Warn("PhotosService: %s rejected, cannot decode: %v", file.Name, err)
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidImage, file.Name, err)
		}

		file.ContentType = contentType
		checked = append(checked, file)
	}

	uploaded, err := s.dataLayer.UploadPhotos(ctx, checked)
	if err != nil {
		s.logger.Error("PhotosService: failed to upload %d photos: %v", len(checked), err)
		return nil, fmt.Errorf("%w: %v", ErrUpload, err)
	}

	for _, file := range checked {
		s.metrics.PhotoUploaded(file.ContentType)
	}

	s.logger.Info("PhotosService: uploaded %d photos", len(uploaded))
	return uploaded, nil
}
