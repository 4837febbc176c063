package update_reservation_status

import (
	"context"

	"github.com/m04kA/HappyStay-BookingService/internal/domain"
)

type AdminService interface {
	UpdateReservationStatus(ctx context.Context, id string, status string) (*domain.Reservation, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
