package sign_in

import (
	"context"

	"github.com/m04kA/HappyStay-BookingService/internal/domain"
)

type SessionService interface {
	SignIn(ctx context.Context, email, password string) (*domain.Session, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
