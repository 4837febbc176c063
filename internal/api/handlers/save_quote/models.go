package save_quote

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/HappyStay-BookingService/internal/api/handlers"
	"github.com/m04kA/HappyStay-BookingService/internal/domain"
	"github.com/m04kA/HappyStay-BookingService/internal/service/admin"
)

// QuoteItemRequest строка сметы; цена строкой или числом ("85.50" / 85.5)
type QuoteItemRequest struct {
	Label     string          `json:"label"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

// SaveQuoteRequest HTTP request model
type SaveQuoteRequest struct {
	Items []QuoteItemRequest `json:"items"`
	Notes string             `json:"notes"`
	Send  bool               `json:"send"` // true - сохранить как отправленную и уведомить клиента
}

// SaveQuoteResponse итог сохранения
type SaveQuoteResponse struct {
	Quote    *handlers.QuoteResponse `json:"quote"`
	Saved    bool                    `json:"saved"`
	Notified bool                    `json:"notified"`
	Message  string                  `json:"message"`
}

// ToDomainItems конвертирует строки запроса
func (r *SaveQuoteRequest) ToDomainItems() []domain.QuoteItem {
	items := make([]domain.QuoteItem, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, domain.QuoteItem{
			Label:     item.Label,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}
	return items
}

// FromQuoteResult конвертирует итог сервиса в HTTP response
func FromQuoteResult(result *admin.QuoteResult) SaveQuoteResponse {
	return SaveQuoteResponse{
		Quote:    handlers.FromDomainQuote(result.Quote),
		Saved:    result.Saved,
		Notified: result.Notified,
		Message:  result.Message,
	}
}
