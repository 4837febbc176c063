package domain

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// QuoteStatus статус сметы
type QuoteStatus string

const (
	QuoteDraft QuoteStatus = "draft"
	QuoteSent  QuoteStatus = "sent"
)

// QuoteItem строка сметы
type QuoteItem struct {
	Label     string          `json:"label"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

// Amount quantity * unit_price
func (i QuoteItem) Amount() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Quote смета по резервации
type Quote struct {
	ID            string
	ReservationID string
	Status        QuoteStatus
	Items         []QuoteItem
	Total         decimal.Decimal
	Notes         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewQuote данные для сохранения сметы
type NewQuote struct {
	ReservationID string
	Status        QuoteStatus
	Items         []QuoteItem
	Notes         string
}

// QuoteTotal сумма quantity * unit_price, округленная до сантимов
func QuoteTotal(items []QuoteItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Amount())
	}
	return total.Round(2)
}

// DisplayQuote выбирает смету для отображения:
// последнюю отправленную, а если таких нет - последнюю любую
func DisplayQuote(quotes []*Quote) *Quote {
	if len(quotes) == 0 {
		return nil
	}

	sorted := make([]*Quote, len(quotes))
	copy(sorted, quotes)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})

	for _, q := range sorted {
		if q.Status == QuoteSent {
			return q
		}
	}
	return sorted[0]
}
