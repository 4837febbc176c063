package get_reservations

import (
	"errors"
	"net/http"

	"github.com/m04kA/HappyStay-BookingService/internal/api/handlers"
	"github.com/m04kA/HappyStay-BookingService/internal/domain"
	"github.com/m04kA/HappyStay-BookingService/internal/service/admin"
)

const msgInvalidDate = "format de date invalide, attendu AAAA-MM-JJ"

type Handler struct {
	service AdminService
	logger  Logger
}

func NewHandler(service AdminService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/reservations?date=YYYY-MM-DD (по умолчанию сегодня)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	date, err := handlers.ParseDateParam(r.URL.Query().Get("date"), h.service.Today())
	if err != nil {
		h.logger.Warn("GET /admin/reservations - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	reservations, err := h.service.GetReservations(r.Context(), date)
	if err != nil {
		switch {
		case errors.Is(err, admin.ErrInvalidInput):
			h.logger.Warn("GET /admin/reservations - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
		default:
			h.logger.Error("GET /admin/reservations - Failed to get reservations: date=%s, error=%v",
				date.Format(domain.DateFormat), err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, ReservationsResponse{
		Date:         date.Format(domain.DateFormat),
		Reservations: handlers.FromDomainReservations(reservations),
	})
}
