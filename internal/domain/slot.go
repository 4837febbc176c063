package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/HappyStay-BookingService/pkg/types"
)

// SlotStatus вычисляемый статус слота
type SlotStatus string

const (
	SlotFree    SlotStatus = "FREE"
	SlotBooked  SlotStatus = "BOOKED"
	SlotBlocked SlotStatus = "BLOCKED"
)

// Slot временной слот на конкретную дату
type Slot struct {
	Date      time.Time
	Time      types.TimeString
	Status    SlotStatus
	Capacity  int
	Available int
	Blocked   bool
}

// NewSlot вычисляет статус слота
// available = capacity - активные резервации (не меньше нуля)
// BLOCKED только при ручной блокировке, FREE при available > 0, иначе BOOKED
func NewSlot(date time.Time, t types.TimeString, capacity int, blocked bool, activeReservations int) Slot {
	available := capacity - activeReservations
	if available < 0 {
		available = 0
	}

	status := SlotFree
	switch {
	case blocked:
		status = SlotBlocked
	case available <= 0:
		status = SlotBooked
	}

	return Slot{
		Date:      date,
		Time:      t,
		Status:    status,
		Capacity:  capacity,
		Available: available,
		Blocked:   blocked,
	}
}

// IsFree true, если в слот можно записаться
func (s Slot) IsFree() bool {
	return s.Status == SlotFree
}

// ID идентификатор слота "YYYY-MM-DD-HH:MM"
func (s Slot) ID() string {
	return SlotID(s.Date, s.Time)
}

// SlotID собирает идентификатор слота
func SlotID(date time.Time, t types.TimeString) string {
	return date.Format(DateFormat) + "-" + t.String()
}

// ParseSlotID разбирает идентификатор по ПОСЛЕДНЕМУ дефису:
// сама дата содержит дефисы
func ParseSlotID(id string) (time.Time, types.TimeString, error) {
	idx := strings.LastIndex(id, "-")
	if idx <= 0 || idx == len(id)-1 {
		return time.Time{}, "", fmt.Errorf("%w: %q", ErrInvalidSlotID, id)
	}

	date, err := ParseDate(id[:idx])
	if err != nil {
		return time.Time{}, "", fmt.Errorf("%w: %q: %v", ErrInvalidSlotID, id, err)
	}

	t, err := types.NewTimeStringFromString(id[idx+1:])
	if err != nil {
		return time.Time{}, "", fmt.Errorf("%w: %q: %v", ErrInvalidSlotID, id, err)
	}

	return date, t, nil
}
