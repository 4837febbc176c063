package get_admin_slots

import (
	"github.com/m04kA/HappyStay-BookingService/internal/domain"
	"github.com/m04kA/HappyStay-BookingService/internal/service/admin"
)

// SlotReservationResponse клиент занятого слота
type SlotReservationResponse struct {
	CustomerName string `json:"customerName"`
	Service      string `json:"service"`
}

// SlotCardResponse карточка слота
type SlotCardResponse struct {
	ID            string                   `json:"id"`
	Date          string                   `json:"date"`
	Time          string                   `json:"time"`
	Status        string                   `json:"status"`
	Capacity      int                      `json:"capacity"`
	Available     int                      `json:"available"`
	ReservationID string                   `json:"reservationId,omitempty"`
	Reservation   *SlotReservationResponse `json:"reservation,omitempty"`
}

// SlotsResponse карточки дня
type SlotsResponse struct {
	Date  string             `json:"date"`
	Slots []SlotCardResponse `json:"slots"`
}

// FromSlotCards конвертирует карточки в HTTP response
func FromSlotCards(cards []admin.SlotCard) []SlotCardResponse {
	result := make([]SlotCardResponse, 0, len(cards))
	for _, c := range cards {
		item := SlotCardResponse{
			ID:            c.ID,
			Date:          c.Date.Format(domain.DateFormat),
			Time:          c.Time.String(),
			Status:        string(c.Status),
			Capacity:      c.Capacity,
			Available:     c.Available,
			ReservationID: c.ReservationID,
		}
		if c.Reservation != nil {
			item.Reservation = &SlotReservationResponse{
				CustomerName: c.Reservation.CustomerName,
				Service:      c.Reservation.Service,
			}
		}
		result = append(result, item)
	}
	return result
}
