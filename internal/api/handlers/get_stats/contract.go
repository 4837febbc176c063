package get_stats

import (
	"context"

	"github.com/m04kA/HappyStay-BookingService/internal/service/admin"
)

type AdminService interface {
	GetDashboardStats(ctx context.Context) (*admin.DashboardStats, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
