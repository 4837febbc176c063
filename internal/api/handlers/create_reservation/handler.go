package create_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/HappyStay-BookingService/internal/api/handlers"
	"github.com/m04kA/HappyStay-BookingService/internal/service/schema"
	createReservation "github.com/m04kA/HappyStay-BookingService/internal/usecase/create_reservation"
)

const msgInvalidRequestBody = "corps de requête invalide"

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		var validationErr *createReservation.ValidationError
		switch {
		case errors.As(err, &validationErr):
			status := validationStatus(validationErr)
			h.logger.Warn("POST /reservations - Validation failed: status=%d, error=%v", status, err)
			handlers.RespondJSON(w, status, ValidationErrorResponse{
				Code:   status,
				Error:  validationErr.Result.First(),
				Errors: validationErr.Result.Errors,
			})
		default:
			h.logger.Error("POST /reservations - Failed to create reservation: date=%s, time=%s, error=%v",
				req.Date, req.Time, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - Reservation created successfully: id=%s, slot=%s",
		result.Reservation.ID, result.Reservation.SlotID())
	handlers.RespondJSON(w, http.StatusCreated, handlers.FromDomainReservation(result.Reservation))
}

// validationStatus 409 для занятого слота, 422 для остальных ошибок формы
func validationStatus(err *createReservation.ValidationError) int {
	first := err.Result.First()
	if first != nil && first.Field == schema.FieldTimeSlot && first.Code == schema.CodeUnavailable {
		return http.StatusConflict
	}
	return http.StatusUnprocessableEntity
}
