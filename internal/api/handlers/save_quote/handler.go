package save_quote

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/HappyStay-BookingService/internal/api/handlers"
	"github.com/m04kA/HappyStay-BookingService/internal/service/admin"
)

const (
	msgInvalidRequestBody = "corps de requête invalide"
	msgNotFound           = "réservation introuvable"
	msgInvalidQuote       = "devis invalide : au moins une ligne avec libellé, quantité et prix"
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

// Handle POST /api/v1/admin/reservations/{id}/quotes
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req SaveQuoteRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/reservations/{id}/quotes - Invalid request body: id=%s, error=%v", id, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	save := h.service.SaveQuote
	if req.Send {
		save = h.service.SendQuote
	}

	result, err := save(r.Context(), id, req.ToDomainItems(), req.Notes)
	if err != nil {
		switch {
		case errors.Is(err, admin.ErrReservationNotFound):
			h.logger.Warn("POST /admin/reservations/{id}/quotes - Reservation not found: id=%s", id)
			handlers.RespondNotFound(w, msgNotFound)
		case errors.Is(err, admin.ErrInvalidInput):
			h.logger.Warn("POST /admin/reservations/{id}/quotes - Invalid quote: id=%s, error=%v", id, err)
			handlers.RespondBadRequest(w, msgInvalidQuote)
		default:
			h.logger.Error("POST /admin/reservations/{id}/quotes - Failed to save quote: id=%s, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/reservations/{id}/quotes - Quote saved: id=%s, quote=%s, notified=%t",
		id, result.Quote.ID, result.Notified)
	handlers.RespondJSON(w, http.StatusCreated, FromQuoteResult(result))
}
