package quotewebhook

// ActionSendQuote действие для сценария отправки сметы в WhatsApp
const ActionSendQuote = "send_quote"

// Item строка сметы в уведомлении
type Item struct {
	Label     string `json:"label"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unitPrice"`
	Amount    string `json:"amount"`
}

// QuoteNotification тело запроса вебхука
type QuoteNotification struct {
	Action        string `json:"action"`
	ReservationID string `json:"reservationId"`
	QuoteID       string `json:"quoteId"`
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	Service       string `json:"service"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	District      string `json:"district"`
	Address       string `json:"address,omitempty"`
	Total         string `json:"total"`
	Notes         string `json:"notes,omitempty"`
	Items         []Item `json:"items"`
}
