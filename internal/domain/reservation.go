package domain

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/m04kA/HappyStay-BookingService/pkg/types"
)

// ReservationStatus статус резервации
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "PENDING"
	StatusConfirmed ReservationStatus = "CONFIRMED"
	StatusCancelled ReservationStatus = "CANCELLED"
)

// ActiveStatuses статусы, которые занимают место в слоте
var ActiveStatuses = []ReservationStatus{StatusPending, StatusConfirmed}

// ParseReservationStatus приводит статус к каноническому виду
// Регистр не важен, "canceled" и "cancelled" - один и тот же статус
func ParseReservationStatus(s string) (ReservationStatus, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "PENDING":
		return StatusPending, nil
	case "CONFIRMED":
		return StatusConfirmed, nil
	case "CANCELLED", "CANCELED":
		return StatusCancelled, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
}

// Lower статус для хранения в БД
func (s ReservationStatus) Lower() string {
	return strings.ToLower(string(s))
}

// IsActive статус занимает место в слоте
func (s ReservationStatus) IsActive() bool {
	return slices.Contains(ActiveStatuses, s)
}

// TransitionTo проверяет переход статуса
// changed = false означает идемпотентный повтор (подтвердить подтвержденную, отменить отмененную)
// CANCELLED - терминальный статус
func (s ReservationStatus) TransitionTo(target ReservationStatus) (changed bool, err error) {
	if s == target {
		return false, nil
	}

	switch {
	case s == StatusCancelled:
		return false, fmt.Errorf("%w: reservation is cancelled", ErrInvalidTransition)
	case target == StatusCancelled:
		return true, nil
	case s == StatusPending && target == StatusConfirmed:
		return true, nil
	default:
		return false, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s, target)
	}
}

// ServiceItem строка заказа внутри резервации
type ServiceItem struct {
	Service          string   `json:"service"`
	Label            string   `json:"label"`
	Quantity         int      `json:"quantity"`
	Size             string   `json:"size,omitempty"`
	Material         string   `json:"material,omitempty"`
	Stains           string   `json:"stains,omitempty"`
	Options          []string `json:"options,omitempty"`
	RemovableCushion bool     `json:"removableCushion,omitempty"`
	Format           string   `json:"format,omitempty"`
	Faces            int      `json:"faces,omitempty"`
	Note             string   `json:"note,omitempty"`
}

// Photo загруженное фото
type Photo struct {
	URL          string `json:"url"`
	Name         string `json:"name"`
	Size         int64  `json:"size"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
}

// PhotoUpload файл перед сохранением
type PhotoUpload struct {
	Name        string
	ContentType string
	Data        []byte
}

// NewReservation данные для создания резервации
type NewReservation struct {
	FirstName string
	LastName  string
	Phone     string
	District  string
	Address   string
	Date      time.Time
	Time      types.TimeString
	Items     []ServiceItem
	Photos    []Photo
	Comments  string
}

// Reservation резервация клиента
type Reservation struct {
	ID        string
	FirstName string
	LastName  string
	Phone     string
	District  string
	Address   string
	Date      time.Time
	Time      types.TimeString
	Items     []ServiceItem
	Photos    []Photo
	Comments  string
	Status    ReservationStatus

	// Quote отображаемая смета (последняя отправленная, иначе последняя любая)
	Quote *Quote

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive true, если резервация занимает место в слоте
func (r *Reservation) IsActive() bool {
	return r.Status.IsActive()
}

// CustomerName имя и фамилия клиента
func (r *Reservation) CustomerName() string {
	return strings.TrimSpace(r.FirstName + " " + r.LastName)
}

// ServiceSummary подписи услуг через запятую
func (r *Reservation) ServiceSummary() string {
	labels := make([]string, 0, len(r.Items))
	for _, item := range r.Items {
		label := item.Label
		if label == "" {
			label = item.Service
		}
		labels = append(labels, label)
	}
	return strings.Join(labels, ", ")
}

// SlotID идентификатор слота резервации
func (r *Reservation) SlotID() string {
	return SlotID(r.Date, r.Time)
}
