package get_admin_slots

import (
	"context"
	"time"

	"github.com/m04kA/HappyStay-BookingService/internal/service/admin"
)

type AdminService interface {
	Today() time.Time
	GetSlots(ctx context.Context, date time.Time) ([]admin.SlotCard, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
