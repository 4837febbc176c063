package suggest_quote

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/HappyStay-BookingService/internal/api/handlers"
	"github.com/m04kA/HappyStay-BookingService/internal/domain"
	"github.com/m04kA/HappyStay-BookingService/internal/service/admin"
)

const msgNotFound = "réservation introuvable"

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

// Handle GET /api/v1/admin/reservations/{id}/quotes/suggestion
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	items, err := h.service.SuggestQuote(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, admin.ErrReservationNotFound):
			h.logger.Warn("GET /admin/reservations/{id}/quotes/suggestion - Reservation not found: id=%s", id)
			handlers.RespondNotFound(w, msgNotFound)
		default:
			h.logger.Error("GET /admin/reservations/{id}/quotes/suggestion - Failed: id=%s, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, SuggestionResponse{
		ReservationID: id,
		Items:         handlers.QuoteItemsResponse(items),
		Total:         domain.QuoteTotal(items).StringFixed(2),
	})
}
