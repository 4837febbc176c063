// Package datalayer описывает единый контракт доступа к данным
// Реализаций две: local (JSON в SQLite/памяти) и remote (PostgreSQL).
// Реализация выбирается один раз при старте и передается потребителям явно
package datalayer

import (
	"context"
	"time"

	"github.com/m04kA/HappyStay-BookingService/internal/domain"
	"github.com/m04kA/HappyStay-BookingService/pkg/types"
)

// DataLayer контракт слоя данных
// Все ошибки возвращаются как *Error с кодом (см. errors.go)
type DataLayer interface {
	// GetSlotsForDate фиксированные слоты дня с вычисленным статусом
	// В выходной день возвращает пустой список
	GetSlotsForDate(ctx context.Context, date time.Time) ([]domain.Slot, error)

	// MarkSlotBlocked и MarkSlotFree идемпотентно ставят/снимают ручную блокировку
	MarkSlotBlocked(ctx context.Context, date time.Time, t types.TimeString) error
	MarkSlotFree(ctx context.Context, date time.Time, t types.TimeString) error

	// CreateReservation создает резервацию в статусе PENDING
	// Проверка доступности и вставка атомарны; при нехватке мест - CodeSlotUnavailable
	CreateReservation(ctx context.Context, in *domain.NewReservation) (*domain.Reservation, error)

	// GetReservationsOfDate резервации на дату по возрастанию времени
	GetReservationsOfDate(ctx context.Context, date time.Time) ([]*domain.Reservation, error)

	GetReservationByID(ctx context.Context, id string) (*domain.Reservation, error)

	// UpdateReservationStatus меняет статус; статус в любом регистре, "canceled" = "cancelled"
	UpdateReservationStatus(ctx context.Context, id string, status string) (*domain.Reservation, error)

	UploadPhotos(ctx context.Context, files []domain.PhotoUpload) ([]domain.Photo, error)

	SaveQuote(ctx context.Context, in *domain.NewQuote) (*domain.Quote, error)

	// GetStats статистика; today - текущая дата в часовом поясе бизнеса
	GetStats(ctx context.Context, today time.Time) (*domain.Stats, error)

	SignIn(ctx context.Context, email, password string) (*domain.Session, error)
	SignOut(ctx context.Context, token string) error
	IsAuthenticated(ctx context.Context, token string) bool

	Ping(ctx context.Context) error
	Close() error
}

// PhotoStore хранилище файлов фото, общее для обеих реализаций
type PhotoStore interface {
	Save(ctx context.Context, file domain.PhotoUpload) (domain.Photo, error)
}

// SlotTimeError проверяет, что время входит в фиксированный набор слотов
func SlotTimeError(schedule domain.Schedule, t types.TimeString) error {
	if !schedule.HasTime(t) {
		return Errorf(CodeInvalidInput, "time %q is not one of the fixed slots", t.String())
	}
	return nil
}
