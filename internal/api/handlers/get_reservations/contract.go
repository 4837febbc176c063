package get_reservations

import (
	"context"
	"time"

	"github.com/m04kA/HappyStay-BookingService/internal/domain"
)

type AdminService interface {
	Today() time.Time
	GetReservations(ctx context.Context, date time.Time) ([]*domain.Reservation, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
