package handlers

import (
	"time"

	"github.com/m04kA/HappyStay-BookingService/internal/domain"
)

// QuoteItemResponse строка сметы
type QuoteItemResponse struct {
	Label     string `json:"label"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unitPrice"`
	Amount    string `json:"amount"`
}

// QuoteResponse смета
type QuoteResponse struct {
	ID            string              `json:"id"`
	ReservationID string              `json:"reservationId"`
	Status        string              `json:"status"`
	Items         []QuoteItemResponse `json:"items"`
	Total         string              `json:"total"`
	Notes         string              `json:"notes,omitempty"`
	CreatedAt     string              `json:"createdAt"`
}

// ReservationResponse резервация
type ReservationResponse struct {
	ID           string               `json:"id"`
	FirstName    string               `json:"firstName"`
	LastName     string               `json:"lastName"`
	CustomerName string               `json:"customerName"`
	Phone        string               `json:"phone"`
	District     string               `json:"district"`
	Address      string               `json:"address,omitempty"`
	Date         string               `json:"date"`
	Time         string               `json:"time"`
	SlotID       string               `json:"slotId"`
	Service      string               `json:"service"`
	Items        []domain.ServiceItem `json:"items"`
	Photos       []domain.Photo       `json:"photos"`
	Comments     string               `json:"comments,omitempty"`
	Status       string               `json:"status"`
	Quote        *QuoteResponse       `json:"quote,omitempty"`
	CreatedAt    string               `json:"createdAt"`
	UpdatedAt    string               `json:"updatedAt"`
}

// QuoteItemsResponse строки сметы
func QuoteItemsResponse(items []domain.QuoteItem) []QuoteItemResponse {
	result := make([]QuoteItemResponse, 0, len(items))
	for _, item := range items {
		result = append(result, QuoteItemResponse{
			Label:     item.Label,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice.StringFixed(2),
			Amount:    item.Amount().StringFixed(2),
		})
	}
	return result
}

// FromDomainQuote конвертирует смету в HTTP-модель
func FromDomainQuote(q *domain.Quote) *QuoteResponse {
	if q == nil {
		return nil
	}
	return &QuoteResponse{
		ID:            q.ID,
		ReservationID: q.ReservationID,
		Status:        string(q.Status),
		Items:         QuoteItemsResponse(q.Items),
		Total:         q.Total.StringFixed(2),
		Notes:         q.Notes,
		CreatedAt:     q.CreatedAt.Format(time.RFC3339),
	}
}

// FromDomainReservation конвертирует резервацию в HTTP-модель
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	items := r.Items
	if items == nil {
		items = []domain.ServiceItem{}
	}
	photos := r.Photos
	if photos == nil {
		photos = []domain.Photo{}
	}

	return &ReservationResponse{
		ID:           r.ID,
		FirstName:    r.FirstName,
		LastName:     r.LastName,
		CustomerName: r.CustomerName(),
		Phone:        r.Phone,
		District:     r.District,
		Address:      r.Address,
		Date:         r.Date.Format(domain.DateFormat),
		Time:         r.Time.String(),
		SlotID:       r.SlotID(),
		Service:      r.ServiceSummary(),
		Items:        items,
		Photos:       photos,
		Comments:     r.Comments,
		Status:       string(r.Status),
		Quote:        FromDomainQuote(r.Quote),
		CreatedAt:    r.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    r.UpdatedAt.Format(time.RFC3339),
	}
}

// FromDomainReservations конвертирует список резерваций
func FromDomainReservations(list []*domain.Reservation) []*ReservationResponse {
	result := make([]*ReservationResponse, 0, len(list))
	for _, r := range list {
		result = append(result, FromDomainReservation(r))
	}
	return result
}

// ParseDateParam разбирает параметр date; пустой параметр - сегодня
func ParseDateParam(raw string, today time.Time) (time.Time, error) {
	if raw == "" {
		return today, nil
	}
	return domain.ParseDate(raw)
}
