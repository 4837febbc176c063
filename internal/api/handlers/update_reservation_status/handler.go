package update_reservation_status

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/m04kA/HappyStay-BookingService/internal/api/handlers"
	"github.com/m04kA/HappyStay-BookingService/internal/service/admin"
)

const (
	msgInvalidRequestBody   = "corps de requête invalide"
	msgMissingReservationID = "identifiant de réservation manquant"
	msgMissingStatus        = "le statut est obligatoire"
	msgNotFound             = "réservation introuvable"
	msgInvalidStatus        = "statut de réservation inconnu"
	msgInvalidTransition    = "changement de statut non autorisé"
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

// Handle PATCH /api/v1/admin/reservations/{id}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if id == "" {
		h.logger.Warn("PATCH /admin/reservations/{id}/status - Missing reservation ID")
		handlers.RespondBadRequest(w, msgMissingReservationID)
		return
	}

	var req UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /admin/reservations/{id}/status - Invalid request body: id=%s, error=%v", id, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if strings.TrimSpace(req.Status) == "" {
		handlers.RespondBadRequest(w, msgMissingStatus)
		return
	}

	reservation, err := h.service.UpdateReservationStatus(r.Context(), id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, admin.ErrReservationNotFound):
			h.logger.Warn("PATCH /admin/reservations/{id}/status - Reservation not found: id=%s", id)
			handlers.RespondNotFound(w, msgNotFound)
		case errors.Is(err, admin.ErrInvalidStatus):
			h.logger.Warn("PATCH /admin/reservations/{id}/status - Invalid status: id=%s, status=%s", id, req.Status)
			handlers.RespondBadRequest(w, msgInvalidStatus)
		case errors.Is(err, admin.ErrInvalidTransition):
			h.logger.Warn("PATCH /admin/reservations/{id}/status - Invalid transition: id=%s, status=%s", id, req.Status)
			handlers.RespondBadRequest(w, msgInvalidTransition)
		default:
			h.logger.Error("PATCH /admin/reservations/{id}/status - Failed to update status: id=%s, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /admin/reservations/{id}/status - Status updated: id=%s, status=%s", id, reservation.Status)
	handlers.RespondJSON(w, http.StatusOK, handlers.FromDomainReservation(reservation))
}
