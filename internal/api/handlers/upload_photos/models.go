package upload_photos

import "github.com/m04kA/HappyStay-BookingService/internal/domain"

// UploadResponse ссылки на загруженные фото
type UploadResponse struct {
	Photos []domain.Photo `json:"photos"`
}
