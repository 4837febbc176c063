package sign_out

import (
	"errors"
	"net/http"

	"github.com/m04kA/HappyStay-BookingService/internal/api/handlers"
	"github.com/m04kA/HappyStay-BookingService/internal/api/middleware"
	"github.com/m04kA/HappyStay-BookingService/internal/datalayer"
)

const msgUnauthorized = "authentification requise"

type Handler struct {
	service SessionService
	logger  Logger
}

func NewHandler(service SessionService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/admin/session
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	token, ok := middleware.GetToken(r.Context())
	if !ok {
		h.logger.Warn("DELETE /admin/session - Missing token in context")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	if err := h.service.SignOut(r.Context(), token); err != nil {
		switch {
		case errors.Is(err, datalayer.ErrUnauthorized):
			h.logger.Warn("DELETE /admin/session - Invalid token: %v", err)
			handlers.RespondUnauthorized(w, msgUnauthorized)
		default:
			h.logger.Error("DELETE /admin/session - Failed to sign out: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondNoContent(w)
}
