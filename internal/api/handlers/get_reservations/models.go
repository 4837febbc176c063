package get_reservations

import "github.com/m04kA/HappyStay-BookingService/internal/api/handlers"

// ReservationsResponse резервации дня
type ReservationsResponse struct {
	Date         string                          `json:"date"`
	Reservations []*handlers.ReservationResponse `json:"reservations"`
}
