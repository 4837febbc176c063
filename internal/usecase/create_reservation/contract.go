package create_reservation

import (
	"context"
	"time"

	"github.com/m04kA/HappyStay-BookingService/internal/domain"
	"github.com/m04kA/HappyStay-BookingService/internal/service/schema"
)

// DataLayer операции слоя данных для записи
type DataLayer interface {
	GetSlotsForDate(ctx context.Context, date time.Time) ([]domain.Slot, error)
	CreateReservation(ctx context.Context, in *domain.NewReservation) (*domain.Reservation, error)
}

// Validator проверка формы и сборка резервации
type Validator interface {
	Build(in *schema.Input) (*domain.NewReservation, schema.Result)
}

// Metrics счетчики созданных и отклоненных резерваций
type Metrics interface {
	ReservationCreated(slot string)
	ReservationRejected(reason string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
