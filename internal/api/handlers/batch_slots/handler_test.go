package batch_slots

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/HappyStay-BookingService/internal/service/admin"
	"github.com/m04kA/HappyStay-BookingService/pkg/logger"
)

type fakeService struct {
	blocked   []time.Time
	unblocked []time.Time
}

func (f *fakeService) Today() time.Time {
	return time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC)
}

func (f *fakeService) BlockAllSlots(_ context.Context, date time.Time) admin.BatchResult {
	f.blocked = append(f.blocked, date)
	return admin.BatchResult{Succeeded: 2, Skipped: 1, Message: "2 créneau(x) bloqué(s), 1 créneau(x) ignoré(s)"}
}

func (f *fakeService) UnblockAllSlots(_ context.Context, date time.Time) admin.BatchResult {
	f.unblocked = append(f.unblocked, date)
	return admin.BatchResult{Succeeded: 3, Message: "3 créneau(x) débloqué(s)"}
}

func TestHandle_BlockAll(t *testing.T) {
	svc := &fakeService{}
	h := NewHandler(svc, BlockAll, logger.NewNop())

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/admin/slots/block-all?date=2025-03-10", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, svc.blocked, 1)
	assert.Empty(t, svc.unblocked)

	var body BatchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "2025-03-10", body.Date)
	assert.Equal(t, 2, body.Succeeded)
	assert.Equal(t, 1, body.Skipped)
}

func TestHandle_UnblockAllDefaultsToToday(t *testing.T) {
	svc := &fakeService{}
	h := NewHandler(svc, UnblockAll, logger.NewNop())

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/admin/slots/unblock-all", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, svc.unblocked, 1)
	assert.True(t, svc.unblocked[0].Equal(svc.Today()))
}

func TestHandle_InvalidDate(t *testing.T) {
	h := NewHandler(&fakeService{}, BlockAll, logger.NewNop())

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/admin/slots/block-all?date=tomorrow", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
