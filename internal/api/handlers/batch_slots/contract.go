package batch_slots

import (
	"context"
	"time"

	"github.com/m04kA/HappyStay-BookingService/internal/service/admin"
)

type AdminService interface {
	Today() time.Time
	BlockAllSlots(ctx context.Context, date time.Time) admin.BatchResult
	UnblockAllSlots(ctx context.Context, date time.Time) admin.BatchResult
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
