package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/HappyStay-BookingService/pkg/types"
)

// Schedule расписание: фиксированные слоты, выходной день и вместимость слота
type Schedule struct {
	TimeSlots []types.TimeString
	DayOff    time.Weekday
	Capacity  int
	Location  *time.Location
}

// NewSchedule собирает расписание из строковых значений конфигурации
func NewSchedule(timeSlots []string, dayOff string, capacity int, location *time.Location) (Schedule, error) {
	slots := make([]types.TimeString, 0, len(timeSlots))
	for _, raw := range timeSlots {
		ts, err := types.NewTimeStringFromString(raw)
		if err != nil {
			return Schedule{}, fmt.Errorf("time slot %q: %w", raw, err)
		}
		slots = append(slots, ts)
	}

	weekday, err := ParseWeekday(dayOff)
	if err != nil {
		return Schedule{}, err
	}

	if capacity < 1 {
		return Schedule{}, fmt.Errorf("slot capacity must be >= 1, got %d", capacity)
	}

	if location == nil {
		location = time.UTC
	}

	return Schedule{TimeSlots: slots, DayOff: weekday, Capacity: capacity, Location: location}, nil
}

// ParseWeekday парсит название дня недели на английском ("sunday")
func ParseWeekday(s string) (time.Weekday, error) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(d.String(), strings.TrimSpace(s)) {
			return d, nil
		}
	}
	return time.Sunday, fmt.Errorf("unknown weekday %q", s)
}

// IsDayOff true, если в эту дату не работаем
func (s Schedule) IsDayOff(date time.Time) bool {
	return date.Weekday() == s.DayOff
}

// HasTime true, если время входит в фиксированный набор слотов
func (s Schedule) HasTime(t types.TimeString) bool {
	for _, slot := range s.TimeSlots {
		if slot == t {
			return true
		}
	}
	return false
}

// Today текущая календарная дата в часовом поясе расписания
func (s Schedule) Today(now time.Time) time.Time {
	loc := s.Location
	if loc == nil {
		loc = time.UTC
	}
	return DateOf(now.In(loc))
}

// Slots строит слоты на дату
// blocked - заблокированные вручную времена, active - число активных резерваций по времени
// В выходной возвращает пустой список
func (s Schedule) Slots(date time.Time, blocked map[types.TimeString]bool, active map[types.TimeString]int) []Slot {
	if s.IsDayOff(date) {
		return []Slot{}
	}

	slots := make([]Slot, 0, len(s.TimeSlots))
	for _, t := range s.TimeSlots {
		slots = append(slots, NewSlot(date, t, s.Capacity, blocked[t], active[t]))
	}
	return slots
}

// ParseDate парсит YYYY-MM-DD в полночь UTC
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateFormat, strings.TrimSpace(s))
}

// DateOf отбрасывает время, оставляя календарную дату (полночь UTC)
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
