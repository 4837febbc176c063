package photos

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/HappyStay-BookingService/internal/domain"
	"github.com/m04kA/HappyStay-BookingService/pkg/logger"
)

type fakeDataLayer struct {
	received []domain.PhotoUpload
	err      error
}

func (f *fakeDataLayer) UploadPhotos(_ context.Context, files []domain.PhotoUpload) ([]domain.Photo, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.received = files
	result := make([]domain.Photo, 0, len(files))
	for _, file := range files {
		result = append(result, domain.Photo{URL: "/uploads/" + file.Name, Name: file.Name, Size: int64(len(file.Data))})
	}
	return result, nil
}

type countingMetrics struct{ byType map[string]int }

func (m *countingMetrics) PhotoUploaded(contentType string) { m.byType[contentType]++ }

func jpegBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return buf.Bytes()
}

func newService(dl DataLayer, m Metrics) *Service {
	return NewService(dl, Limits{MaxPhotos: 4, MaxFileSize: 1024 * 1024}, m, logger.NewNop())
}

func TestUpload(t *testing.T) {
	dl := &fakeDataLayer{}
	m := &countingMetrics{byType: map[string]int{}}
	s := newService(dl, m)

	data := jpegBytes(t)
	got, err := s.Upload(context.Background(), []domain.PhotoUpload{
		{Name: "a.jpg", ContentType: "application/octet-stream", Data: data},
		{Name: "b.jpg", Data: data},
	})
	require.NoError(t, err)
	assert.Len(t, got, 2)
	require.Len(t, dl.received, 2)
	assert.Equal(t, "image/jpeg", dl.received[0].ContentType)
	assert.Equal(t, 2, m.byType["image/jpeg"])
}

func TestUpload_Rejections(t *testing.T) {
	data := jpegBytes(t)

	tests := []struct {
		name  string
		files []domain.PhotoUpload
		want  error
	}{
		{"no files", nil, ErrNoFiles},
		{"too many", make([]domain.PhotoUpload, 5), ErrTooManyPhotos},
		{"too large", []domain.PhotoUpload{{Name: "big.jpg", Data: make([]byte, 2*1024*1024)}}, ErrFileTooLarge},
		{"not an image", []domain.PhotoUpload{{Name: "doc.pdf", Data: []byte("%PDF-1.4 hello")}}, ErrUnsupportedType},
		{"corrupted jpeg", []domain.PhotoUpload{{Name: "x.jpg", Data: data[:20]}}, ErrInvalidImage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dl := &fakeDataLayer{}
			s := newService(dl, &countingMetrics{byType: map[string]int{}})

			_, err := s.Upload(context.Background(), tt.files)
			assert.ErrorIs(t, err, tt.want)
			assert.Nil(t, dl.received)
		})
	}
}

func TestUpload_DataLayerFailure(t *testing.T) {
	s := newService(&fakeDataLayer{err: errors.New("disk full")}, &countingMetrics{byType: map[string]int{}})

	_, err := s.Upload(context.Background(), []domain.PhotoUpload{{Name: "a.jpg", Data: jpegBytes(t)}})
	assert.ErrorIs(t, err, ErrUpload)
}
