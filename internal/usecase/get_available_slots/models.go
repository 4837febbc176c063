package get_available_slots

import (
	"time"

	"github.com/m04kA/HappyStay-BookingService/internal/domain"
	"github.com/m04kA/HappyStay-BookingService/pkg/types"
)

// Request модель запроса слотов на дату
type Request struct {
	Date time.Time // Дата (без времени)
}

// Response слоты дня
type Response struct {
	Date   time.Time
	DayOff bool   // выходной, слотов нет
	Past   bool   // дата в прошлом, слотов нет
	Slots  []Slot // фиксированные слоты в порядке расписания
}

// Slot модель временного слота
type Slot struct {
	ID        string            // "YYYY-MM-DD-HH:MM"
	Time      types.TimeString  // Время начала слота
	Status    domain.SlotStatus // FREE | BOOKED | BLOCKED
	Available int               // Свободных мест
	Capacity  int               // Всего мест
}
