package get_config

import (
	"net/http"

	"github.com/m04kA/HappyStay-BookingService/internal/api/handlers"
)

// Handler отдает настройки, собранные при старте
type Handler struct {
	config ConfigResponse
}

func NewHandler(config ConfigResponse) *Handler {
	return &Handler{config: config}
}

// Handle GET /api/v1/config
func (h *Handler) Handle(w http.ResponseWriter, _ *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, h.config)
}
