package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrInvalidToken токен поврежден или подписан чужим ключом
	ErrInvalidToken = errors.New("auth: invalid token")

	// ErrExpiredToken срок действия токена истек
	ErrExpiredToken = errors.New("auth: token expired")
)

const issuer = "happystay-booking"

// Claims содержимое токена администратора
// ID (jti) совпадает с идентификатором сессии в слое данных
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// SessionID идентификатор сессии
func (c *Claims) SessionID() string {
	return c.ID
}

// TokenIssuer выпускает и проверяет токены сессий (HS256)
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenIssuer создает выпускающего токены
func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// WithClock подменяет часы (для тестов)
func (i *TokenIssuer) WithClock(now func() time.Time) *TokenIssuer {
	i.now = now
	return i
}

// TTL время жизни токена
func (i *TokenIssuer) TTL() time.Duration {
	return i.ttl
}

// Issue выпускает токен для новой сессии
func (i *TokenIssuer) Issue(email string) (token string, claims *Claims, err error) {
	now := i.now()
	claims = &Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Issuer:    issuer,
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}

	token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", nil, err
	}
	return token, claims, nil
}

// Parse проверяет подпись и срок действия токена
func (i *TokenIssuer) Parse(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return i.secret, nil
	}, jwt.WithTimeFunc(i.now), jwt.WithIssuer(issuer))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.ID == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
