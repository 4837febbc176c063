package admin

import (
	"time"

	"github.com/m04kA/HappyStay-BookingService/internal/domain"
	"github.com/m04kA/HappyStay-BookingService/pkg/types"
)

// SlotCardStatus статус карточки слота в панели
type SlotCardStatus string

const (
	CardAvailable SlotCardStatus = "available"
	CardReserved  SlotCardStatus = "reserved"
	CardBlocked   SlotCardStatus = "blocked"
)

// Целевые статусы для ToggleSlotStatus
const (
	ToggleBlocked   = "blocked"
	ToggleAvailable = "available"
)

// SlotReservation краткие данные резервации на карточке слота
type SlotReservation struct {
	CustomerName string
	Service      string
}

// SlotCard карточка фиксированного слота
type SlotCard struct {
	ID            string
	Date          time.Time
	Time          types.TimeString
	Status        SlotCardStatus
	Capacity      int
	Available     int
	ReservationID string
	Reservation   *SlotReservation
}

// BatchResult итог пакетной блокировки/разблокировки
// Частичный отказ не считается ошибкой
type BatchResult struct {
	Succeeded int
	Skipped   int
	Message   string
}

// DashboardStats статистика панели
type DashboardStats struct {
	TotalReservations     int
	TodayReservations     int
	PendingReservations   int
	ConfirmedReservations int
	TotalSlots            int
}

// QuoteResult итог сохранения сметы
// Saved и Notified независимы: сбой доставки не отменяет сохранение
type QuoteResult struct {
	Quote    *domain.Quote
	Saved    bool
	Notified bool
	Message  string
}

func cardStatus(status domain.SlotStatus) SlotCardStatus {
	switch status {
	case domain.SlotBooked:
		return CardReserved
	case domain.SlotBlocked:
		return CardBlocked
	default:
		return CardAvailable
	}
}
