package datalayer

import (
	"context"
	"errors"

	"github.com/m04kA/HappyStay-BookingService/internal/domain"
	"github.com/m04kA/HappyStay-BookingService/internal/infra/storage/photos"
)

// UploadAll сохраняет файлы по одному; первая ошибка прерывает загрузку
func UploadAll(ctx context.Context, store PhotoStore, files []domain.PhotoUpload) ([]domain.Photo, error) {
	if len(files) == 0 {
		return nil, Errorf(CodeInvalidInput, "no files to upload")
	}

	result := make([]domain.Photo, 0, len(files))
	for _, file := range files {
		photo, err := store.Save(ctx, file)
		if err != nil {
			if errors.Is(err, photos.ErrUnsupportedType) || errors.Is(err, photos.ErrInvalidImage) {
				return nil, NewError(CodeInvalidInput, "invalid photo "+file.Name, err)
			}
			return nil, NewError(CodeBackend, "save photo "+file.Name, err)
		}
		result = append(result, photo)
	}
	return result, nil
}

// ValidateQuote проверяет строки сметы перед сохранением
func ValidateQuote(in *domain.NewQuote) error {
	if in.ReservationID == "" {
		return Errorf(CodeInvalidInput, "reservation id is required")
	}
	if len(in.Items) == 0 {
		return Errorf(CodeInvalidInput, "quote has no items")
	}
	for i, item := range in.Items {
		if item.Label == "" {
			return Errorf(CodeInvalidInput, "quote item %d has no label", i+1)
		}
		if item.Quantity <= 0 {
			return Errorf(CodeInvalidInput, "quote item %d has non-positive quantity", i+1)
		}
		if item.UnitPrice.IsNegative() {
			return Errorf(CodeInvalidInput, "quote item %d has negative price", i+1)
		}
	}
	switch in.Status {
	case domain.QuoteDraft, domain.QuoteSent:
	default:
		return Errorf(CodeInvalidInput, "unknown quote status %q", in.Status)
	}
	return nil
}
