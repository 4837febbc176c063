package quotewebhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/m04kA/HappyStay-BookingService/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client отправляет смету во внешний сценарий (n8n), который пересылает ее клиенту
type Client struct {
	url        string
	httpClient *http.Client
	log        Logger
}

// NewClient создает клиент; пустой url отключает доставку
func NewClient(url string, timeout time.Duration, log Logger) *Client {
	return &Client{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Enabled true, если URL вебхука задан
func (c *Client) Enabled() bool {
	return c.url != ""
}

// SendQuote отправляет смету по резервации
func (c *Client) SendQuote(ctx context.Context, reservation *domain.Reservation, quote *domain.Quote) error {
	if !c.Enabled() {
		return ErrDisabled
	}

	payload, err := json.Marshal(NewQuoteNotification(reservation, quote))
	if err != nil {
		return fmt.Errorf("%w: failed to encode payload: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	c.log.Info("QuoteWebhook: quote=%s for reservation=%s delivered", quote.ID, reservation.ID)
	return nil
}

// NewQuoteNotification собирает тело уведомления
func NewQuoteNotification(reservation *domain.Reservation, quote *domain.Quote) QuoteNotification {
	items := make([]Item, 0, len(quote.Items))
	for _, item := range quote.Items {
		items = append(items, Item{
			Label:     item.Label,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice.StringFixed(2),
			Amount:    item.Amount().StringFixed(2),
		})
	}

	return QuoteNotification{
		Action:        ActionSendQuote,
		ReservationID: reservation.ID,
		QuoteID:       quote.ID,
		Name:          reservation.CustomerName(),
		Phone:         reservation.Phone,
		Service:       reservation.ServiceSummary(),
		Date:          reservation.Date.Format(domain.DateFormat),
		Time:          reservation.Time.String(),
		District:      reservation.District,
		Address:       reservation.Address,
		Total:         quote.Total.StringFixed(2),
		Notes:         quote.Notes,
		Items:         items,
	}
}
