package get_reservation

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/HappyStay-BookingService/internal/api/handlers"
	"github.com/m04kA/HappyStay-BookingService/internal/service/admin"
)

const (
	msgMissingReservationID = "identifiant de réservation manquant"
	msgNotFound             = "réservation introuvable"
)

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

// Handle GET /api/v1/admin/reservations/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if id == "" {
		h.logger.Warn("GET /admin/reservations/{id} - Missing reservation ID")
		handlers.RespondBadRequest(w, msgMissingReservationID)
		return
	}

	reservation, err := h.service.GetReservation(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, admin.ErrReservationNotFound):
			h.logger.Warn("GET /admin/reservations/{id} - Reservation not found: id=%s", id)
			handlers.RespondNotFound(w, msgNotFound)
		default:
			h.logger.Error("GET /admin/reservations/{id} - Failed to get reservation: id=%s, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, handlers.FromDomainReservation(reservation))
}
