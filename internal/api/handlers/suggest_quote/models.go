package suggest_quote

import "github.com/m04kA/HappyStay-BookingService/internal/api/handlers"

// SuggestionResponse предложенные строки сметы
type SuggestionResponse struct {
	ReservationID string                       `json:"reservationId"`
	Items         []handlers.QuoteItemResponse `json:"items"`
	Total         string                       `json:"total"`
}
