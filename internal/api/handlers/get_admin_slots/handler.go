package get_admin_slots

import (
	"net/http"

	"github.com/m04kA/HappyStay-BookingService/internal/api/handlers"
	"github.com/m04kA/HappyStay-BookingService/internal/domain"
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

// Handle GET /api/v1/admin/slots?date=YYYY-MM-DD (по умолчанию сегодня)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	date, err := handlers.ParseDateParam(r.URL.Query().Get("date"), h.service.Today())
	if err != nil {
		h.logger.Warn("GET /admin/slots - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	cards, err := h.service.GetSlots(r.Context(), date)
	if err != nil {
		h.logger.Error("GET /admin/slots - Failed to get slots: date=%s, error=%v", date.Format(domain.DateFormat), err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, SlotsResponse{
		Date:  date.Format(domain.DateFormat),
		Slots: FromSlotCards(cards),
	})
}
