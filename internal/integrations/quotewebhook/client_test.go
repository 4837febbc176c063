package quotewebhook

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/HappyStay-BookingService/internal/domain"
	"github.com/m04kA/HappyStay-BookingService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func fixture() (*domain.Reservation, *domain.Quote) {
	reservation := &domain.Reservation{
		ID:        "res_1",
		FirstName: "Sara",
		LastName:  "Bennani",
		Phone:     "+212639887031",
		District:  "Gauthier",
		Date:      time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Time:      types.MustTimeString("10:00"),
		Items:     []domain.ServiceItem{{Service: domain.ServiceSofa, Label: "Canapé/Fauteuil - 3 places", Quantity: 1}},
	}
	items := []domain.QuoteItem{{Label: "Canapé 3 places", Quantity: 2, UnitPrice: decimal.NewFromInt(150)}}
	quote := &domain.Quote{
		ID:            "quote_1",
		ReservationID: "res_1",
		Status:        domain.QuoteSent,
		Items:         items,
		Total:         domain.QuoteTotal(items),
		Notes:         "Accès parking",
	}
	return reservation, quote
}

func TestSendQuote_PostsPayload(t *testing.T) {
	var got QuoteNotification
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, nopLogger{})
	reservation, quote := fixture()

	require.NoError(t, client.SendQuote(context.Background(), reservation, quote))

	assert.Equal(t, ActionSendQuote, got.Action)
	assert.Equal(t, "res_1", got.ReservationID)
	assert.Equal(t, "Sara Bennani", got.Name)
	assert.Equal(t, "2025-03-10", got.Date)
	assert.Equal(t, "10:00", got.Time)
	assert.Equal(t, "300.00", got.Total)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "150.00", got.Items[0].UnitPrice)
	assert.Equal(t, "300.00", got.Items[0].Amount)
}

func TestSendQuote_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, nopLogger{})
	reservation, quote := fixture()

	err := client.SendQuote(context.Background(), reservation, quote)
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestSendQuote_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 20*time.Millisecond, nopLogger{})
	reservation, quote := fixture()

	err := client.SendQuote(context.Background(), reservation, quote)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestSendQuote_Disabled(t *testing.T) {
	client := NewClient("", time.Second, nopLogger{})
	assert.False(t, client.Enabled())

	reservation, quote := fixture()
	assert.ErrorIs(t, client.SendQuote(context.Background(), reservation, quote), ErrDisabled)
}
