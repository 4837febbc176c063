package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/m04kA/HappyStay-BookingService/internal/api/handlers"
)

type contextKey string

const tokenKey contextKey = "admin_token"

const msgUnauthorized = "authentification requise"

// Authenticator проверка сессии администратора
type Authenticator interface {
	IsAuthenticated(ctx context.Context, token string) bool
}

// Auth пропускает запрос только с действующей сессией в заголовке Authorization: Bearer <token>
// Сессию проверяет слой данных, клиентский токен только носитель
func Auth(auth Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := BearerToken(r)
			if token == "" || !auth.IsAuthenticated(r.Context(), token) {
				handlers.RespondUnauthorized(w, msgUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithToken(r.Context(), token)))
		})
	}
}

// BearerToken токен из заголовка Authorization
func BearerToken(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	const prefix = "bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

// WithToken кладет токен сессии в контекст
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey, token)
}

// GetToken токен сессии, сохраненный Auth
func GetToken(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenKey).(string)
	return token, ok && token != ""
}
