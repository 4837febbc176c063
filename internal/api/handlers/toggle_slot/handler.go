package toggle_slot

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/m04kA/HappyStay-BookingService/internal/api/handlers"
	"github.com/m04kA/HappyStay-BookingService/internal/service/admin"
)

const (
	msgInvalidRequestBody = "corps de requête invalide"
	msgInvalidSlotID      = "identifiant de créneau invalide"
	msgUnsupportedStatus  = "statut de créneau non pris en charge (blocked ou available)"
	msgUnknownSlot        = "ce créneau horaire n'existe pas"
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

// Handle PATCH /api/v1/admin/slots/{slotId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	slotID := mux.Vars(r)["slotId"]

	var req ToggleSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /admin/slots/{slotId} - Invalid request body: slot=%s, error=%v", slotID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.service.ToggleSlotStatus(r.Context(), slotID, req.Status); err != nil {
		switch {
		case errors.Is(err, admin.ErrInvalidSlotID):
			h.logger.Warn("PATCH /admin/slots/{slotId} - Invalid slot ID: %s", slotID)
			handlers.RespondBadRequest(w, msgInvalidSlotID)
		case errors.Is(err, admin.ErrUnsupportedSlotStatus):
			h.logger.Warn("PATCH /admin/slots/{slotId} - Unsupported status: slot=%s, status=%s", slotID, req.Status)
			handlers.RespondBadRequest(w, msgUnsupportedStatus)
		case errors.Is(err, admin.ErrInvalidInput):
			h.logger.Warn("PATCH /admin/slots/{slotId} - Invalid input: slot=%s, error=%v", slotID, err)
			handlers.RespondBadRequest(w, msgUnknownSlot)
		default:
			h.logger.Error("PATCH /admin/slots/{slotId} - Failed to toggle slot: slot=%s, error=%v", slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /admin/slots/{slotId} - Slot updated: slot=%s, status=%s", slotID, req.Status)
	handlers.RespondJSON(w, http.StatusOK, ToggleSlotResponse{
		ID:     slotID,
		Status: strings.ToLower(strings.TrimSpace(req.Status)),
	})
}
