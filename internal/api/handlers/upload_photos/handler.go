package upload_photos

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/m04kA/HappyStay-BookingService/internal/api/handlers"
	"github.com/m04kA/HappyStay-BookingService/internal/domain"
	"github.com/m04kA/HappyStay-BookingService/internal/service/photos"
)

// formField имя поля multipart-формы
const formField = "photos"

const (
	msgInvalidForm     = "formulaire multipart invalide"
	msgNoFiles         = "aucune photo reçue"
	msgTooManyPhotos   = "trop de photos"
	msgFileTooLarge    = "photo trop volumineuse"
	msgUnsupportedType = "format de photo non pris en charge (JPEG, PNG ou WebP)"
	msgInvalidImage    = "fichier image illisible"
)

type Handler struct {
	service     PhotoService
	maxFileSize int64
	maxPhotos   int
	logger      Logger
}

func NewHandler(service PhotoService, maxFileSize int64, maxPhotos int, logger Logger) *Handler {
	return &Handler{
		service:     service,
		maxFileSize: maxFileSize,
		maxPhotos:   maxPhotos,
		logger:      logger,
	}
}

// Handle POST /api/v1/photos (multipart/form-data, поле photos)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// запас на заголовки частей формы
	limit := h.maxFileSize*int64(h.maxPhotos+1) + 1<<20
	r.Body = http.MaxBytesReader(w, r.Body, limit)

	if err := r.ParseMultipartForm(h.maxFileSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.logger.Warn("POST /photos - Request too large: %v", err)
			handlers.RespondError(w, http.StatusRequestEntityTooLarge, msgFileTooLarge)
			return
		}
		h.logger.Warn("POST /photos - Invalid multipart form: %v", err)
		handlers.RespondBadRequest(w, msgInvalidForm)
		return
	}
	defer func() {
		_ = r.MultipartForm.RemoveAll()
	}()

	headers := r.MultipartForm.File[formField]
	files := make([]domain.PhotoUpload, 0, len(headers))
	for _, fh := range headers {
		file, err := readFile(fh)
		if err != nil {
			h.logger.Warn("POST /photos - Cannot read %s: %v", fh.Filename, err)
			handlers.RespondBadRequest(w, msgInvalidForm)
			return
		}
		files = append(files, file)
	}

	uploaded, err := h.service.Upload(r.Context(), files)
	if err != nil {
		switch {
		case errors.Is(err, photos.ErrNoFiles):
			handlers.RespondBadRequest(w, msgNoFiles)
		case errors.Is(err, photos.ErrTooManyPhotos):
			handlers.RespondBadRequest(w, msgTooManyPhotos)
		case errors.Is(err, photos.ErrFileTooLarge):
			handlers.RespondError(w, http.StatusRequestEntityTooLarge, msgFileTooLarge)
		case errors.Is(err, photos.ErrUnsupportedType):
			handlers.RespondError(w, http.StatusUnsupportedMediaType, msgUnsupportedType)
		case errors.Is(err, photos.ErrInvalidImage):
			handlers.RespondBadRequest(w, msgInvalidImage)
		default:
			h.logger.Error("POST /photos - Failed to upload %d photos: %v", len(files), err)
			handlers.RespondInternalError(w)
			return
		}
		h.logger.Warn("POST /photos - Upload rejected: %v", err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, UploadResponse{Photos: uploaded})
}

func readFile(fh *multipart.FileHeader) (domain.PhotoUpload, error) {
	f, err := fh.Open()
	if err != nil {
		return domain.PhotoUpload{}, fmt.Errorf("open: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return domain.PhotoUpload{}, fmt.Errorf("read: %w", err)
	}

	return domain.PhotoUpload{
		Name:        fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
