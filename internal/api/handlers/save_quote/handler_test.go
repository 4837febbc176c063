package save_quote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/HappyStay-BookingService/internal/domain"
	"github.com/m04kA/HappyStay-BookingService/internal/service/admin"
	"github.com/m04kA/HappyStay-BookingService/pkg/logger"
)

type fakeService struct {
	called string
	items  []domain.QuoteItem
	notes  string
	err    error
}

func (f *fakeService) result(status domain.QuoteStatus, notified bool) (*admin.QuoteResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &admin.QuoteResult{
		Quote:    &domain.Quote{ID: "q-1", ReservationID: "r-1", Status: status, Items: f.items, Total: domain.QuoteTotal(f.items)},
		Saved:    true,
		Notified: notified,
		Message:  "ok",
	}, nil
}

func (f *fakeService) SaveQuote(_ context.Context, _ string, items []domain.QuoteItem, notes string) (*admin.QuoteResult, error) {
	f.called, f.items, f.notes = "save", items, notes
	return f.result(domain.QuoteDraft, false)
}

func (f *fakeService) SendQuote(_ context.Context, _ string, items []domain.QuoteItem, notes string) (*admin.QuoteResult, error) {
	f.called, f.items, f.notes = "send", items, notes
	return f.result(domain.QuoteSent, true)
}

func post(h *Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/reservations/r-1/quotes", strings.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"id": "r-1"})
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_SavesDraft(t *testing.T) {
	svc := &fakeService{}
	h := NewHandler(svc, logger.NewNop())

	rec := post(h, `{"items":[{"label":"Matelas Double (1 face)","quantity":1,"unitPrice":"150.00"},{"label":"Chaise tissu","quantity":4,"unitPrice":25}],"notes":"accès parking"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "save", svc.called)
	require.Len(t, svc.items, 2)
	assert.True(t, svc.items[1].UnitPrice.Equal(decimal.NewFromInt(25)))
	assert.Equal(t, "accès parking", svc.notes)

	var body SaveQuoteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Saved)
	assert.False(t, body.Notified)
	assert.Equal(t, "250.00", body.Quote.Total)
}

func TestHandle_SendsQuote(t *testing.T) {
	svc := &fakeService{}
	h := NewHandler(svc, logger.NewNop())

	rec := post(h, `{"items":[{"label":"Canapé","quantity":1,"unitPrice":"120"}],"send":true}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "send", svc.called)
	assert.Contains(t, rec.Body.String(), `"notified":true`)
}

func TestHandle_Errors(t *testing.T) {
	tests := map[string]struct {
		body string
		err  error
		code int
	}{
		"bad json":      {body: `{"items":`, code: http.StatusBadRequest},
		"not found":     {body: `{"items":[]}`, err: fmt.Errorf("%w: x", admin.ErrReservationNotFound), code: http.StatusNotFound},
		"invalid quote": {body: `{"items":[]}`, err: fmt.Errorf("%w: x", admin.ErrInvalidInput), code: http.StatusBadRequest},
		"backend":       {body: `{"items":[]}`, err: fmt.Errorf("%w: x", admin.ErrInternal), code: http.StatusInternalServerError},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			h := NewHandler(&fakeService{err: tt.err}, logger.NewNop())
			assert.Equal(t, tt.code, post(h, tt.body).Code)
		})
	}
}
