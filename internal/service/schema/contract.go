package schema

import (
	"context"
	"time"

	"github.com/m04kA/HappyStay-BookingService/internal/domain"
)

// SlotSource источник слотов для повторной проверки доступности
type SlotSource interface {
	GetSlotsForDate(ctx context.Context, date time.Time) ([]domain.Slot, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
