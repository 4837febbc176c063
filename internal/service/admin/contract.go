package admin

import (
	"context"
	"time"

	"github.com/m04kA/HappyStay-BookingService/internal/domain"
	"github.com/m04kA/HappyStay-BookingService/pkg/types"
)

// DataLayer операции слоя данных, нужные панели администратора
type DataLayer interface {
	GetSlotsForDate(ctx context.Context, date time.Time) ([]domain.Slot, error)
	MarkSlotBlocked(ctx context.Context, date time.Time, t types.TimeString) error
	MarkSlotFree(ctx context.Context, date time.Time, t types.TimeString) error
	GetReservationsOfDate(ctx context.Context, date time.Time) ([]*domain.Reservation, error)
	GetReservationByID(ctx context.Context, id string) (*domain.Reservation, error)
	UpdateReservationStatus(ctx context.Context, id string, status string) (*domain.Reservation, error)
	SaveQuote(ctx context.Context, in *domain.NewQuote) (*domain.Quote, error)
	GetStats(ctx context.Context, today time.Time) (*domain.Stats, error)
}

// Notifier доставка отправленной сметы клиенту
type Notifier interface {
	Enabled() bool
	SendQuote(ctx context.Context, reservation *domain.Reservation, quote *domain.Quote) error
}

// Metrics бизнес-метрики панели
type Metrics interface {
	SlotStatusChanged(status string)
	QuoteSaved(status string, notified bool)
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальное время
type RealTimeProvider struct{}

func (RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
