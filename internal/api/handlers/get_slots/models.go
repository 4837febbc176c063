package get_slots

import (
	"github.com/m04kA/HappyStay-BookingService/internal/domain"
	getAvailableSlots "github.com/m04kA/HappyStay-BookingService/internal/usecase/get_available_slots"
)

// SlotResponse слот для формы бронирования
type SlotResponse struct {
	ID        string `json:"id"`
	Time      string `json:"time"`
	Status    string `json:"status"`
	Available int    `json:"available"`
	Capacity  int    `json:"capacity"`
}

// SlotsResponse HTTP response model
type SlotsResponse struct {
	Date   string         `json:"date"`
	DayOff bool           `json:"dayOff"`
	Past   bool           `json:"past"`
	Slots  []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *SlotsResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, SlotResponse{
			ID:        s.ID,
			Time:      s.Time.String(),
			Status:    string(s.Status),
			Available: s.Available,
			Capacity:  s.Capacity,
		})
	}
	return &SlotsResponse{
		Date:   resp.Date.Format(domain.DateFormat),
		DayOff: resp.DayOff,
		Past:   resp.Past,
		Slots:  slots,
	}
}
