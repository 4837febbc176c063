package local

import (
	"time"

	"github.com/m04kA/HappyStay-BookingService/internal/infra/auth"
)

// TokenIssuer выпуск и проверка токенов сессий
type TokenIssuer interface {
	Issue(email string) (string, *auth.Claims, error)
	Parse(token string) (*auth.Claims, error)
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
