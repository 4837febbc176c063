package get_stats

import "github.com/m04kA/HappyStay-BookingService/internal/service/admin"

// StatsResponse HTTP response model
type StatsResponse struct {
	TotalReservations     int `json:"totalReservations"`
	TodayReservations     int `json:"todayReservations"`
	PendingReservations   int `json:"pendingReservations"`
	ConfirmedReservations int `json:"confirmedReservations"`
	TotalSlots            int `json:"totalSlots"`
}

func FromDashboardStats(s *admin.DashboardStats) StatsResponse {
	return StatsResponse{
		TotalReservations:     s.TotalReservations,
		TodayReservations:     s.TodayReservations,
		PendingReservations:   s.PendingReservations,
		ConfirmedReservations: s.ConfirmedReservations,
		TotalSlots:            s.TotalSlots,
	}
}
