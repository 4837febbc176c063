package remote

import (
	"context"
	"time"

	"github.com/m04kA/HappyStay-BookingService/internal/domain"
	"github.com/m04kA/HappyStay-BookingService/internal/infra/auth"
	"github.com/m04kA/HappyStay-BookingService/pkg/types"
)

// ReservationRepository интерфейс для работы с резервациями
type ReservationRepository interface {
	Create(ctx context.Context, in *domain.NewReservation) (*domain.Reservation, error)
	GetByID(ctx context.Context, id string) (*domain.Reservation, error)
	GetByDate(ctx context.Context, date time.Time) ([]*domain.Reservation, error)
	CountActive(ctx context.Context, date time.Time, t types.TimeString) (int, error)
	CountActiveByDate(ctx context.Context, date time.Time) (map[types.TimeString]int, error)
	UpdateStatus(ctx context.Context, id string, status domain.ReservationStatus) error
	GetStats(ctx context.Context, today time.Time) (*domain.Stats, error)
}

// SlotRepository интерфейс для работы с блокировками слотов
type SlotRepository interface {
	SetBlocked(ctx context.Context, date time.Time, t types.TimeString, blocked bool) error
	Lock(ctx context.Context, date time.Time, t types.TimeString) (bool, error)
	GetBlockedByDate(ctx context.Context, date time.Time) (map[types.TimeString]bool, error)
}

// QuoteRepository интерфейс для работы со сметами
type QuoteRepository interface {
	Create(ctx context.Context, in *domain.NewQuote) (*domain.Quote, error)
	GetByReservationIDs(ctx context.Context, reservationIDs []string) (map[string][]*domain.Quote, error)
}

// SessionRepository интерфейс для работы с администраторами и их сессиями
type SessionRepository interface {
	GetPasswordHash(ctx context.Context, email string) (string, error)
	Create(ctx context.Context, id, email string, expiresAt time.Time) error
	Revoke(ctx context.Context, id string) error
	IsActive(ctx context.Context, id string, now time.Time) (bool, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// TokenIssuer выпуск и проверка токенов сессий
type TokenIssuer interface {
	Issue(email string) (string, *auth.Claims, error)
	Parse(token string) (*auth.Claims, error)
}

// Database соединение с БД для health-check и завершения работы
type Database interface {
	PingContext(ctx context.Context) error
	Close() error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
