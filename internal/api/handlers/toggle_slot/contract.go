package toggle_slot

import "context"

type AdminService interface {
	ToggleSlotStatus(ctx context.Context, slotID string, status string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
