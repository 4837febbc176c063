package suggest_quote

import (
	"context"

	"github.com/m04kA/HappyStay-BookingService/internal/domain"
)

type AdminService interface {
	SuggestQuote(ctx context.Context, reservationID string) ([]domain.QuoteItem, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
