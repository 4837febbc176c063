package domain

import "time"

// Stats статистика для панели администратора
type Stats struct {
	TotalReservations     int
	TodayReservations     int
	PendingReservations   int // на сегодня
	ConfirmedReservations int // на сегодня
}

// Session сессия администратора
type Session struct {
	Token     string
	Email     string
	ExpiresAt time.Time
}
