package sign_in

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/m04kA/HappyStay-BookingService/internal/api/handlers"
	"github.com/m04kA/HappyStay-BookingService/internal/datalayer"
)

const (
	msgInvalidRequestBody = "corps de requête invalide"
	msgMissingCredentials = "e-mail et mot de passe obligatoires"
	msgInvalidCredentials = "identifiants invalides"
)

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

// Handle POST /api/v1/admin/session
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req SignInRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/session - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		handlers.RespondBadRequest(w, msgMissingCredentials)
		return
	}

	session, err := h.service.SignIn(r.Context(), email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, datalayer.ErrUnauthorized):
			h.logger.Warn("POST /admin/session - Invalid credentials: email=%s", email)
			handlers.RespondUnauthorized(w, msgInvalidCredentials)
		case errors.Is(err, datalayer.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgMissingCredentials)
		default:
			h.logger.Error("POST /admin/session - Failed to sign in: email=%s, error=%v", email, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/session - Signed in: email=%s", session.Email)
	handlers.RespondJSON(w, http.StatusCreated, SessionResponse{
		Token:     session.Token,
		Email:     session.Email,
		ExpiresAt: session.ExpiresAt.Format(time.RFC3339),
	})
}
