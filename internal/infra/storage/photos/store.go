package photos

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	_ "golang.org/x/image/webp"

	"github.com/m04kA/HappyStay-BookingService/internal/domain"
)

const thumbsDir = "thumbs"

var extensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Store хранит фото в директории и отдает их по публичному URL
// JPEG и PNG перекодируются с учетом EXIF-ориентации (метаданные при этом удаляются),
// WebP сохраняется как есть. Для каждого фото пишется JPEG-миниатюра
type Store struct {
	dir        string
	publicBase string
	thumbSize  int
	logger     Logger
}

// NewStore создает хранилище и нужные директории
func NewStore(dir, publicBase string, thumbSize int, logger Logger) (*Store, error) {
	if err := os.MkdirAll(filepath.Join(dir, thumbsDir), 0o755); err != nil {
		return nil, fmt.Errorf("%w: mkdir %s: %v", ErrWriteFile, dir, err)
	}
	if thumbSize <= 0 {
		thumbSize = 320
	}
	return &Store{
		dir:        dir,
		publicBase: strings.TrimRight(publicBase, "/"),
		thumbSize:  thumbSize,
		logger:     logger,
	}, nil
}

// DetectContentType определяет MIME по содержимому,
// заявленный тип используется, только если по байтам определить не удалось
func DetectContentType(data []byte, declared string) string {
	detected := http.DetectContentType(data)
	if detected == "application/octet-stream" && declared != "" {
		detected = declared
	}
	if i := strings.Index(detected, ";"); i >= 0 {
		detected = detected[:i]
	}
	return strings.ToLower(strings.TrimSpace(detected))
}

// Decode проверяет, что данные - изображение разрешенного типа
func Decode(data []byte, contentType string) (image.Image, error) {
	if _, ok := extensions[contentType]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, contentType)
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	return img, nil
}

// Save сохраняет фото и возвращает его публичное описание
func (s *Store) Save(ctx context.Context, file domain.PhotoUpload) (domain.Photo, error) {
	if err := ctx.Err(); err != nil {
		return domain.Photo{}, err
	}

	contentType := DetectContentType(file.Data, file.ContentType)
	img, err := Decode(file.Data, contentType)
	if err != nil {
		return domain.Photo{}, err
	}

	id := uuid.New().String()
	name := id + extensions[contentType]
	fullPath := filepath.Join(s.dir, name)

	if contentType == "image/webp" {
		err = os.WriteFile(fullPath, file.Data, 0o644)
	} else {
		err = imaging.Save(img, fullPath)
	}
	if err != nil {
		return domain.Photo{}, fmt.Errorf("%w: %s: %v", ErrWriteFile, fullPath, err)
	}

	info, err := os.Stat(fullPath)
	if err != nil {
		return domain.Photo{}, fmt.Errorf("%w: stat %s: %v", ErrWriteFile, fullPath, err)
	}

	photo := domain.Photo{
		URL:  s.publicBase + "/" + name,
		Name: originalName(file.Name, name),
		Size: info.Size(),
	}

	thumbName := id + ".jpg"
	thumb := imaging.Thumbnail(img, s.thumbSize, s.thumbSize, imaging.Lanczos)
	if err := imaging.Save(thumb, filepath.Join(s.dir, thumbsDir, thumbName)); err != nil {
		// без миниатюры фото все равно пригодно
		s.logger.Warn("PhotoStore: failed to write thumbnail for %s: %v", name, err)
	} else {
		photo.ThumbnailURL = s.publicBase + "/" + path.Join(thumbsDir, thumbName)
	}

	s.logger.Info("PhotoStore: saved %s (%s, %d bytes)", name, contentType, photo.Size)
	return photo, nil
}

func originalName(name, fallback string) string {
	name = filepath.Base(strings.TrimSpace(name))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return fallback
	}
	return name
}
