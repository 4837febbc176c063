package upload_photos

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/HappyStay-BookingService/internal/domain"
	"github.com/m04kA/HappyStay-BookingService/internal/service/photos"
	"github.com/m04kA/HappyStay-BookingService/pkg/logger"
)

type fakeService struct {
	files []domain.PhotoUpload
	err   error
}

func (f *fakeService) Upload(_ context.Context, files []domain.PhotoUpload) ([]domain.Photo, error) {
	f.files = files
	if f.err != nil {
		return nil, f.err
	}
	result := make([]domain.Photo, 0, len(files))
	for _, file := range files {
		result = append(result, domain.Photo{URL: "/uploads/" + file.Name, Name: file.Name, Size: int64(len(file.Data))})
	}
	return result, nil
}

func multipartRequest(t *testing.T, field string, names ...string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, name := range names {
		part, err := mw.CreateFormFile(field, name)
		require.NoError(t, err)
		_, err = part.Write([]byte("data-" + name))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/photos", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestHandle_Uploads(t *testing.T) {
	svc := &fakeService{}
	h := NewHandler(svc, 1<<20, 4, logger.NewNop())

	rec := httptest.NewRecorder()
	h.Handle(rec, multipartRequest(t, formField, "a.jpg", "b.png"))

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, svc.files, 2)
	assert.Equal(t, "a.jpg", svc.files[0].Name)
	assert.Equal(t, []byte("data-a.jpg"), svc.files[0].Data)
	assert.Contains(t, rec.Body.String(), `"/uploads/b.png"`)
}

func TestHandle_NotMultipart(t *testing.T) {
	h := NewHandler(&fakeService{}, 1<<20, 4, logger.NewNop())

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/photos", bytes.NewBufferString("{}")))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_ServiceErrors(t *testing.T) {
	tests := map[string]struct {
		err  error
		code int
	}{
		"no files":    {err: photos.ErrNoFiles, code: http.StatusBadRequest},
		"too many":    {err: fmt.Errorf("%w: 5", photos.ErrTooManyPhotos), code: http.StatusBadRequest},
		"too large":   {err: fmt.Errorf("%w: a.jpg", photos.ErrFileTooLarge), code: http.StatusRequestEntityTooLarge},
		"bad type":    {err: fmt.Errorf("%w: a.gif", photos.ErrUnsupportedType), code: http.StatusUnsupportedMediaType},
		"not decoded": {err: fmt.Errorf("%w: a.jpg", photos.ErrInvalidImage), code: http.StatusBadRequest},
		"storage":     {err: fmt.Errorf("%w: disk", photos.ErrUpload), code: http.StatusInternalServerError},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			h := NewHandler(&fakeService{err: tt.err}, 1<<20, 4, logger.NewNop())
			rec := httptest.NewRecorder()
			h.Handle(rec, multipartRequest(t, formField, "a.jpg"))
			assert.Equal(t, tt.code, rec.Code)
		})
	}
}
