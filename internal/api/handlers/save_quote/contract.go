package save_quote

import (
	"context"

	"github.com/m04kA/HappyStay-BookingService/internal/domain"
	"github.com/m04kA/HappyStay-BookingService/internal/service/admin"
)

type AdminService interface {
	SaveQuote(ctx context.Context, reservationID string, items []domain.QuoteItem, notes string) (*admin.QuoteResult, error)
	SendQuote(ctx context.Context, reservationID string, items []domain.QuoteItem, notes string) (*admin.QuoteResult, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
